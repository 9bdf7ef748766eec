// Package services exposes the record manager to a view. The view only talks
// to RecordService; it never touches the store or pipeline directly.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/client/models"
	"github.com/dmitrijs2005/recordkeeper/internal/client/pipeline"
	"github.com/dmitrijs2005/recordkeeper/internal/client/store"
	"github.com/dmitrijs2005/recordkeeper/internal/metrics"
)

// ActionResult is a message for the view to show in place of opening an
// editor or preview, which do not exist yet.
type ActionResult struct {
	Title   string
	Message string
}

type RecordService interface {
	Variant() models.Variant
	List(ctx context.Context) []models.Record
	Get(ctx context.Context, id string) (models.Record, error)
	Create(ctx context.Context, sub pipeline.Submission) (models.Record, error)
	Delete(ctx context.Context, id string) error
	// Complete marks a record as completed.
	Complete(ctx context.Context, id string) (models.Record, error)
	Rename(ctx context.Context, id, name, description string) (models.Record, error)
	Edit(ctx context.Context, id string) (ActionResult, error)
	View(ctx context.Context, id string) (ActionResult, error)
}

type recordService struct {
	variant  models.Variant
	store    *store.Store
	pipeline *pipeline.Pipeline
	recorder metrics.Recorder
}

func NewRecordService(v models.Variant, st *store.Store, p *pipeline.Pipeline, rec metrics.Recorder) RecordService {
	if rec == nil {
		rec = metrics.NopRecorder{}
	}
	return &recordService{variant: v, store: st, pipeline: p, recorder: rec}
}

func (s *recordService) Variant() models.Variant { return s.variant }

func (s *recordService) List(context.Context) []models.Record {
	return s.store.List()
}

func (s *recordService) Get(_ context.Context, id string) (models.Record, error) {
	return s.store.Get(id)
}

func (s *recordService) Create(ctx context.Context, sub pipeline.Submission) (models.Record, error) {
	return s.pipeline.Submit(ctx, sub)
}

func (s *recordService) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.store.Delete(ctx, id)
	s.recorder.Observe(ctx, "delete", err == nil, time.Since(start))
	return err
}

func (s *recordService) Complete(ctx context.Context, id string) (models.Record, error) {
	start := time.Now()
	done := models.StatusCompleted
	rec, err := s.store.Update(ctx, id, models.Patch{Status: &done})
	s.recorder.Observe(ctx, "complete", err == nil, time.Since(start))
	return rec, err
}

func (s *recordService) Rename(ctx context.Context, id, name, description string) (models.Record, error) {
	start := time.Now()
	rec, err := s.store.Update(ctx, id, models.Patch{Name: &name, Description: &description})
	s.recorder.Observe(ctx, "rename", err == nil, time.Since(start))
	return rec, err
}

func (s *recordService) Edit(_ context.Context, id string) (ActionResult, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return ActionResult{}, err
	}
	return ActionResult{
		Title:   fmt.Sprintf("Editing: %s", rec.Name),
		Message: fmt.Sprintf("This will open the %s editor where you can modify your %s.", s.variant.Noun, s.variant.Noun),
	}, nil
}

func (s *recordService) View(_ context.Context, id string) (ActionResult, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return ActionResult{}, err
	}
	return ActionResult{
		Title:   fmt.Sprintf("Viewing: %s", rec.Name),
		Message: fmt.Sprintf("This will open a preview of your %s.", s.variant.Noun),
	}, nil
}
