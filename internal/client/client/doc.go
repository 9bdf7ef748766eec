// Package client bootstraps local storage for the recordkeeper CLI.
//
// OpenStorage turns the configured storage driver into a slots.Repository:
//
//   - sqlite:   a file database opened with modernc.org/sqlite, migrated with goose
//   - postgres: a pgx-backed database/sql pool, migrated with goose
//   - s3:       one object per slot in an S3 (or S3-compatible) bucket
//   - memory:   process-local, lost on exit
//
// Migrations are embedded (see package migrations) and applied on every
// start; goose keeps this idempotent.
//
// The returned Storage owns the underlying handle and must be closed.
package client
