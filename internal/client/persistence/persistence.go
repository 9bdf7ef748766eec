// Package persistence encodes a record collection into a single named
// storage slot and back.
//
// Two policies exist: Durable writes every change through a slots.Repository,
// Transient keeps the collection in process memory and forgets it on exit.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/recordkeeper/internal/client/models"
	"github.com/dmitrijs2005/recordkeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/logging"
)

// Adapter loads and saves the full ordered collection.
type Adapter interface {
	// Load returns the stored collection. An absent or unreadable slot
	// yields an empty collection, not an error.
	Load(ctx context.Context) ([]models.Record, error)
	// Save overwrites the slot with records in one write.
	Save(ctx context.Context, records []models.Record) error
}

// Durable persists the collection as a JSON array under one slot key.
type Durable struct {
	repo slots.Repository
	key  string
	log  logging.Logger
}

func NewDurable(repo slots.Repository, key string, log logging.Logger) *Durable {
	return &Durable{repo: repo, key: key, log: log.With("slot", key)}
}

func (d *Durable) Load(ctx context.Context) ([]models.Record, error) {
	raw, err := d.repo.Get(ctx, d.key)
	if err != nil {
		return nil, fmt.Errorf("%w: load slot %s: %v", common.ErrPersistence, d.key, err)
	}
	if raw == nil {
		d.log.Debug(ctx, "slot empty, starting with no records")
		return []models.Record{}, nil
	}

	var records []models.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		d.log.Warn(ctx, "slot content unreadable, starting with no records", "error", err)
		return []models.Record{}, nil
	}
	if records == nil {
		records = []models.Record{}
	}

	d.log.Debug(ctx, "slot loaded", "count", len(records))
	return records, nil
}

func (d *Durable) Save(ctx context.Context, records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encode slot %s: %v", common.ErrPersistence, d.key, err)
	}
	if err := d.repo.Set(ctx, d.key, raw); err != nil {
		return fmt.Errorf("%w: save slot %s: %v", common.ErrPersistence, d.key, err)
	}
	return nil
}

// Transient keeps the last saved collection in memory only. A new Transient
// always starts empty.
type Transient struct {
	mu      sync.Mutex
	records []models.Record
}

func NewTransient() *Transient {
	return &Transient{}
}

func (t *Transient) Load(context.Context) ([]models.Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.Record, len(t.records))
	copy(out, t.records)
	return out, nil
}

func (t *Transient) Save(_ context.Context, records []models.Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = make([]models.Record, len(records))
	copy(t.records, records)
	return nil
}

// ForVariant picks the adapter matching v's persistence policy. repo is only
// used for durable variants.
func ForVariant(v models.Variant, repo slots.Repository, log logging.Logger) Adapter {
	if v.Persistence == models.PersistenceDurable {
		return NewDurable(repo, v.SlotKey, log)
	}
	return NewTransient()
}
