package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/client/client"
	"github.com/dmitrijs2005/recordkeeper/internal/client/config"
	"github.com/dmitrijs2005/recordkeeper/internal/client/identity"
	"github.com/dmitrijs2005/recordkeeper/internal/client/models"
	"github.com/dmitrijs2005/recordkeeper/internal/client/persistence"
	"github.com/dmitrijs2005/recordkeeper/internal/client/pipeline"
	"github.com/dmitrijs2005/recordkeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/recordkeeper/internal/client/services"
	"github.com/dmitrijs2005/recordkeeper/internal/client/store"
	"github.com/dmitrijs2005/recordkeeper/internal/logging"
	"github.com/dmitrijs2005/recordkeeper/internal/metrics"
)

type App struct {
	config   *config.Config
	variant  models.Variant
	service  services.RecordService
	identity *identity.Resolver
	recorder *metrics.PrometheusRecorder
	storage  *client.Storage
	log      logging.Logger

	userName string
	reader   *bufio.Reader
	out      io.Writer
	today    func() time.Time
}

// openStorage is a seam for tests.
var openStorage = client.OpenStorage

// NewApp opens storage for durable variants, loads the collection and wires
// the store, pipeline and record service. Close releases the storage.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	variant, err := c.ResolveVariant()
	if err != nil {
		return nil, err
	}

	a := &App{
		config:   c,
		variant:  variant,
		recorder: metrics.NewPrometheusRecorder(),
		identity: identity.NewResolver(slots.NewMemoryRepository()),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		today:    time.Now,
	}

	var repo slots.Repository
	if variant.Persistence == models.PersistenceDurable {
		a.storage, err = openStorage(ctx, c)
		if err != nil {
			return nil, err
		}
		repo = a.storage.Slots
	}

	adapter := persistence.ForVariant(variant, repo, log)
	st, err := store.New(ctx, adapter,
		store.WithDefaultStatus(variant.DefaultStatus),
		store.WithLogger(log.With("component", "store")),
	)
	if err != nil {
		_ = a.storage.Close()
		return nil, err
	}

	p := pipeline.New(variant, st,
		pipeline.WithGenerator(pipeline.NewPlaceholderGenerator(c.GenerationDelay)),
		pipeline.WithClock(func() time.Time { return a.today() }),
		pipeline.WithLogger(log.With("component", "pipeline")),
		pipeline.WithRecorder(a.recorder),
		pipeline.OnStateChange(a.onPipelineState),
	)
	a.service = services.NewRecordService(variant, st, p, a.recorder)

	return a, nil
}

// Close releases the storage backend, if any.
func (a *App) Close() error {
	return a.storage.Close()
}

// Run resolves the display name and blocks in the REPL until the user exits
// or stdin ends.
func (a *App) Run(ctx context.Context) error {
	name, err := a.identity.Resolve(ctx, a.config.Username)
	if err != nil {
		return err
	}
	a.userName = name

	printlnFn("Welcome, " + a.userName + "! Type 'help' for commands.")
	a.List(ctx)

	var statusFn func() string
	if interactive() {
		statusFn = a.getStatus
	}
	runREPL(ctx, a, statusFn, a.reader, func(err error) {
		a.log.Debug(ctx, "command failed", "error", err)
	})
	return nil
}

func (a *App) getStatus() string {
	return "(" + a.userName + " " + a.variant.Name + ")"
}

func (a *App) onPipelineState(s pipeline.State) {
	switch s {
	case pipeline.StateGenerating:
		printlnFn("Generating your " + a.variant.Noun + "...")
	case pipeline.StateCommitting:
		printlnFn("Saving...")
	}
}
