package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recordkeeper/internal/client/config"
	"github.com/dmitrijs2005/recordkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/recordkeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/recordkeeper/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "pgx"
)

var errUnknownDialect = errors.New("unknown migration dialect")

// Storage is an opened slot backend plus whatever needs closing behind it.
type Storage struct {
	Slots slots.Repository
	close func() error
}

// Close releases the underlying handle. It is safe to call on a Storage
// that owns nothing.
func (s *Storage) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func migrationDir(dialect string) (string, error) {
	switch dialect {
	case DialectSQLite:
		return "sqlite", nil
	case DialectPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("%w: %s", errUnknownDialect, dialect)
	}
}

// RunMigrations applies the embedded migrations for dialect to db.
func RunMigrations(ctx context.Context, db *sql.DB, dialect string) error {
	dir, err := migrationDir(dialect)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return nil
}

// InitSQLite opens (creating if needed) the SQLite file at path and migrates it.
func InitSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// modernc's driver serialises writers anyway; one connection avoids
	// SQLITE_BUSY between pool members.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, DialectSQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InitPostgres connects to dsn through pgx and migrates the schema.
func InitPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := RunMigrations(ctx, db, DialectPostgres); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// newS3Client is a seam over slots.NewS3Client for tests.
var newS3Client = func(ctx context.Context, cfg slots.S3Config) (slots.S3API, error) {
	c, err := slots.NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// OpenStorage opens the slot backend named by cfg.StorageDriver.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return &Storage{Slots: slots.NewMemoryRepository()}, nil

	case config.DriverSQLite:
		db, err := InitSQLite(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return &Storage{Slots: slots.NewSQLiteRepository(db), close: db.Close}, nil

	case config.DriverPostgres:
		db, err := InitPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return &Storage{Slots: slots.NewPostgresRepository(db), close: db.Close}, nil

	case config.DriverS3:
		api, err := newS3Client(ctx, slots.S3Config{
			Bucket:       cfg.S3Bucket,
			Prefix:       cfg.S3Prefix,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			PathStyle:    cfg.S3PathStyle,
		})
		if err != nil {
			return nil, err
		}
		return &Storage{Slots: slots.NewS3Repository(api, cfg.S3Bucket, cfg.S3Prefix)}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
