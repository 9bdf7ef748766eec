// Package pipeline runs the create flow for a record: validate the input,
// run the (simulated) generation step, commit the result to the store.
//
// Only one submission runs at a time. A Submit that arrives while another
// is in flight fails fast with common.ErrBusy and changes nothing.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/client/models"
	"github.com/dmitrijs2005/recordkeeper/internal/client/validation"
	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/logging"
	"github.com/dmitrijs2005/recordkeeper/internal/metrics"
)

const operation = "create"

type State int

const (
	StateIdle State = iota
	StateValidating
	StateGenerating
	StateCommitting
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateGenerating:
		return "generating"
	case StateCommitting:
		return "committing"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Error reports the stage a submission failed in. Err matches one of
// common.ErrValidation, common.ErrGeneration or common.ErrPersistence.
type Error struct {
	Stage State
	Err   error
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Submission is raw user input. Surrounding whitespace is trimmed before
// validation.
type Submission struct {
	Name        string
	Description string
	DueDate     string
}

// Committer appends a record. *store.Store satisfies it.
type Committer interface {
	Create(ctx context.Context, nr models.NewRecord) (models.Record, error)
}

type Pipeline struct {
	mu    sync.Mutex
	busy  bool
	state State

	variant  models.Variant
	store    Committer
	gen      Generator
	today    func() time.Time
	log      logging.Logger
	recorder metrics.Recorder
	onState  func(State)
}

type Option func(*Pipeline)

func WithGenerator(g Generator) Option {
	return func(p *Pipeline) { p.gen = g }
}

// WithClock sets the source of "today" for due date checks.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.today = now }
}

func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// OnStateChange registers fn to be called on every transition. fn runs on
// the submitting goroutine and must not call Submit.
func OnStateChange(fn func(State)) Option {
	return func(p *Pipeline) { p.onState = fn }
}

func New(variant models.Variant, store Committer, opts ...Option) *Pipeline {
	p := &Pipeline{
		variant:  variant,
		store:    store,
		gen:      NewPlaceholderGenerator(DefaultDelay),
		today:    time.Now,
		log:      logging.Discard(),
		recorder: metrics.NopRecorder{},
		onState:  func(State) {},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// State returns the current stage.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Busy reports whether a submission is in flight.
func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

// Submit validates sub, runs the generator and commits the result.
//
// On a persistence failure the committed record is returned together with
// the error; it stays in the store.
func (p *Pipeline) Submit(ctx context.Context, sub Submission) (models.Record, error) {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		p.log.Debug(ctx, "submission rejected, pipeline busy")
		return models.Record{}, common.ErrBusy
	}
	p.busy = true
	p.mu.Unlock()

	start := time.Now()
	defer func() {
		p.mu.Lock()
		p.busy = false
		p.state = StateIdle
		p.mu.Unlock()
		p.onState(StateIdle)
	}()

	rec, err := p.run(ctx, sub)
	p.recorder.Observe(ctx, operation, err == nil, time.Since(start))
	return rec, err
}

func (p *Pipeline) run(ctx context.Context, sub Submission) (models.Record, error) {
	p.setState(StateValidating)

	fields := models.Fields{
		Name:        strings.TrimSpace(sub.Name),
		Description: strings.TrimSpace(sub.Description),
		DueDate:     strings.TrimSpace(sub.DueDate),
	}
	if err := validation.Validate(fields, validation.RulesFor(p.variant), p.today()); err != nil {
		return models.Record{}, p.fail(ctx, StateValidating, err)
	}

	draft := models.NewRecord{
		Name:        fields.Name,
		Description: fields.Description,
		Status:      p.variant.DefaultStatus,
	}
	if p.variant.RequireDueDate {
		draft.DueDate = fields.DueDate
	}

	p.setState(StateGenerating)
	out, err := p.generate(ctx, draft)
	if err != nil {
		return models.Record{}, p.fail(ctx, StateGenerating, fmt.Errorf("%w: %w", common.ErrGeneration, err))
	}

	p.setState(StateCommitting)
	rec, err := p.store.Create(ctx, out)
	if err != nil {
		// rec is populated when only the save failed; it stays in the store.
		return rec, p.fail(ctx, StateCommitting, err)
	}

	p.log.Info(ctx, "record created", "id", rec.ID, "variant", p.variant.Name)
	return rec, nil
}

func (p *Pipeline) generate(ctx context.Context, draft models.NewRecord) (out models.NewRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()
	return p.gen.Generate(ctx, draft)
}

func (p *Pipeline) fail(ctx context.Context, stage State, err error) error {
	p.setState(StateFailed)
	if stage == StateValidating {
		p.log.Debug(ctx, "submission rejected", "error", err)
	} else {
		p.log.Warn(ctx, "submission failed", "stage", stage.String(), "error", err)
	}
	return &Error{Stage: stage, Err: err}
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
	p.onState(s)
}
