// Package slots provides key-value "slot" storage for serialized record
// collections.
//
// # Overview
//
// A slot is a named location holding one opaque byte payload. A missing slot
// is not an error: Get returns (nil, nil).
//
// # Backends
//
//   - MemoryRepository: process memory; transient data and session values
//   - SQLiteRepository: local file via modernc.org/sqlite (default durable backend)
//   - PostgresRepository: PostgreSQL via the pgx stdlib driver
//   - S3Repository: one object per slot in an S3-compatible bucket
//
// The SQL backends expect the slots table created by the goose migrations in
// internal/client/migrations.
//
// # Atomicity
//
// Set replaces the whole payload in a single backend write (an upsert, a
// PutObject, or a map assignment), so a concurrent Get sees either the old or
// the new value, never a mix.
//
// Typical Usage
//
//	repo := slots.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "userProjects", payload)
//	b, _ := repo.Get(ctx, "userProjects")
//	_ = repo.Delete(ctx, "userProjects")
package slots
