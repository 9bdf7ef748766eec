// Package store holds the canonical, ordered in-memory record collection and
// writes it through a persistence.Adapter after every change.
//
// Writes are best effort: if the adapter fails, the in-memory change stays
// and the caller gets the result together with an error wrapping
// common.ErrPersistence.
package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/client/models"
	"github.com/dmitrijs2005/recordkeeper/internal/client/persistence"
	"github.com/dmitrijs2005/recordkeeper/internal/client/validation"
	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/logging"
	"github.com/google/uuid"
)

const maxIDAttempts = 3

// Store is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	records []models.Record

	adapter       persistence.Adapter
	defaultStatus models.Status
	now           func() time.Time
	newID         func() (string, error)
	log           logging.Logger
}

type Option func(*Store)

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 id source.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) { s.newID = gen }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithDefaultStatus sets the status given to records created without one.
func WithDefaultStatus(st models.Status) Option {
	return func(s *Store) { s.defaultStatus = st }
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// New seeds a Store with whatever adapter.Load returns. Load is called
// exactly once; the adapter itself decides how absent or corrupt data
// degrades.
func New(ctx context.Context, adapter persistence.Adapter, opts ...Option) (*Store, error) {
	s := &Store{
		adapter:       adapter,
		defaultStatus: models.StatusGenerated,
		now:           time.Now,
		newID:         newUUIDv7,
		log:           logging.Discard(),
	}
	for _, o := range opts {
		o(s)
	}

	records, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.records = records
	s.log.Debug(ctx, "store loaded", "count", len(records))
	return s, nil
}

// List returns a copy of all records in insertion order.
func (s *Store) List() []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len is the number of records currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) Get(id string) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Record{}, fmt.Errorf("record %s: %w", id, common.ErrorNotFound)
	}
	return s.records[i], nil
}

// Create appends a new record and saves the collection. On a save failure
// the record is returned together with the error and stays in the store.
func (s *Store) Create(ctx context.Context, nr models.NewRecord) (models.Record, error) {
	if strings.TrimSpace(nr.Name) == "" {
		return models.Record{}, validation.ErrNameRequired
	}
	if err := validation.ValidateText(nr.Name, nr.Description); err != nil {
		return models.Record{}, err
	}

	status := nr.Status
	if status == "" {
		status = s.defaultStatus
	}
	if !status.Known() {
		return models.Record{}, fmt.Errorf("%w: %q", common.ErrUnknownStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.uniqueID()
	if err != nil {
		return models.Record{}, err
	}

	rec := models.Record{
		ID:          id,
		Name:        nr.Name,
		Description: nr.Description,
		CreatedAt:   s.now().UTC().Round(0),
		Status:      status,
		DueDate:     nr.DueDate,
	}
	s.records = append(s.records, rec)

	return rec, s.saveLocked(ctx, "create", rec.ID)
}

// Update applies patch to the record with id. Only the fields the patch sets
// are checked, against the same limits as on creation; ID and CreatedAt never
// change.
func (s *Store) Update(ctx context.Context, id string, patch models.Patch) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Record{}, fmt.Errorf("record %s: %w", id, common.ErrorNotFound)
	}

	rec := s.records[i]
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return models.Record{}, validation.ErrNameRequired
		}
		if err := validation.ValidateText(*patch.Name, ""); err != nil {
			return models.Record{}, err
		}
		rec.Name = *patch.Name
	}
	if patch.Description != nil {
		if err := validation.ValidateText("", *patch.Description); err != nil {
			return models.Record{}, err
		}
		rec.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Known() {
			return models.Record{}, fmt.Errorf("%w: %q", common.ErrUnknownStatus, *patch.Status)
		}
		rec.Status = *patch.Status
	}

	s.records[i] = rec
	return rec, s.saveLocked(ctx, "update", id)
}

// Delete removes the record with id. An unknown id leaves the collection
// untouched and returns ErrorNotFound. A failed save does not undo the
// removal.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("record %s: %w", id, common.ErrorNotFound)
	}
	s.records = slices.Delete(s.records, i, i+1)

	return s.saveLocked(ctx, "delete", id)
}

func (s *Store) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		if s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate id: %d collisions in a row", maxIDAttempts)
}

func (s *Store) saveLocked(ctx context.Context, op, id string) error {
	snapshot := make([]models.Record, len(s.records))
	copy(snapshot, s.records)

	if err := s.adapter.Save(ctx, snapshot); err != nil {
		s.log.Warn(ctx, "save failed, change kept in memory", "op", op, "id", id, "error", err)
		return err
	}
	return nil
}
