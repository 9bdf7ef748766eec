// Package models defines the record types managed by the record store and
// the per-variant policy that shapes them.
package models

import (
	"time"
)

// Status is the lifecycle state of a record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusGenerated Status = "generated"
	StatusCompleted Status = "completed"
)

// Known reports whether s is one of the defined statuses.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusGenerated, StatusCompleted:
		return true
	default:
		return false
	}
}

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

// Record is a single project or task. It is JSON-compatible so a whole
// collection can be written to one storage slot.
type Record struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      Status    `json:"status"`
	// DueDate is only set for tasks, in DateLayout form.
	DueDate string `json:"dueDate,omitempty"`
}

// Fields is the raw user input for a new record.
type Fields struct {
	Name        string
	Description string
	DueDate     string
}

// NewRecord is what the store needs to append a record; id, timestamp and
// default status are assigned by the store.
type NewRecord struct {
	Name        string
	Description string
	DueDate     string
	Status      Status
}

// Patch describes an explicit update. Nil fields are left unchanged.
type Patch struct {
	Name        *string
	Description *string
	Status      *Status
}
