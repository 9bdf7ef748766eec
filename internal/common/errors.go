// Package common defines sentinel errors shared by the record manager layers.
// Callers should match them with errors.Is; concrete error types elsewhere
// (validation.Error, pipeline.Error) unwrap to one of these.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrValidation is matched by every field or range validation failure.
	ErrValidation = errors.New("validation error")

	// ErrPersistence marks a failed slot read or write. The in-memory change
	// that triggered a failed write is kept.
	ErrPersistence = errors.New("persistence error")

	// Pipeline errors.
	ErrGeneration = errors.New("generation error")
	ErrBusy       = errors.New("generation already in progress")

	ErrUnknownStatus = errors.New("unknown status")
)
