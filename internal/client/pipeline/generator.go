package pipeline

import (
	"context"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/client/models"
)

// DefaultDelay is how long PlaceholderGenerator pretends to work.
const DefaultDelay = 2 * time.Second

// Generator turns a validated draft into the record that gets committed.
type Generator interface {
	Generate(ctx context.Context, draft models.NewRecord) (models.NewRecord, error)
}

// PlaceholderGenerator waits a fixed delay and hands the draft back
// unchanged. No content is generated.
type PlaceholderGenerator struct {
	Delay time.Duration
}

// NewPlaceholderGenerator falls back to DefaultDelay when delay is not
// positive.
func NewPlaceholderGenerator(delay time.Duration) *PlaceholderGenerator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &PlaceholderGenerator{Delay: delay}
}

func (g *PlaceholderGenerator) Generate(ctx context.Context, draft models.NewRecord) (models.NewRecord, error) {
	t := time.NewTimer(g.Delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return models.NewRecord{}, ctx.Err()
	case <-t.C:
		return draft, nil
	}
}
