package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/client/client"
	"github.com/dmitrijs2005/recordkeeper/internal/client/config"
	"github.com/dmitrijs2005/recordkeeper/internal/client/models"
	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func newTestApp(t *testing.T, variant string, input ...string) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Variant = variant
	cfg.StorageDriver = config.DriverMemory
	cfg.GenerationDelay = time.Millisecond

	a, err := NewApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	a.reader = readerFromLines(input...)
	a.out = io.Discard
	a.today = func() time.Time { return testToday }
	a.userName = "tester"
	return a
}

func TestApp_CreateProjectAndList(t *testing.T) {
	out := capturePrint(t)
	a := newTestApp(t, "projects", "  Bakery  ", "Bread and cakes")
	ctx := context.Background()

	require.NoError(t, a.List(ctx))
	assert.Contains(t, *out, "You haven't created any websites yet.")

	require.NoError(t, a.Create(ctx))
	assert.Contains(t, *out, "Generating your website...")

	recs := a.service.List(ctx)
	require.Len(t, recs, 1)
	assert.Equal(t, "Bakery", recs[0].Name)
	assert.Equal(t, models.StatusGenerated, recs[0].Status)

	*out = nil
	require.NoError(t, a.List(ctx))
	require.Len(t, *out, 1)
	assert.Contains(t, (*out)[0], "Bakery")
	assert.Contains(t, (*out)[0], "Bread and cakes")
}

func TestApp_CreateValidationErrors(t *testing.T) {
	out := capturePrint(t)
	a := newTestApp(t, "tasks", "Ship it", "", "2030-01-01")

	err := a.Create(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, *out, "Please select a due date between today and 2 years from today.")
	assert.Empty(t, a.service.List(context.Background()))
}

func TestApp_CreateTaskThenDone(t *testing.T) {
	capturePrint(t)
	a := newTestApp(t, "tasks", "Ship it", "", "2025-04-01")
	ctx := context.Background()

	require.NoError(t, a.Create(ctx))
	recs := a.service.List(ctx)
	require.Len(t, recs, 1)
	assert.Equal(t, "2025-04-01", recs[0].DueDate)
	assert.Equal(t, models.StatusPending, recs[0].Status)

	require.NoError(t, a.Done(ctx, recs[0].ID))
	got, err := a.service.Get(ctx, recs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestApp_DeleteAsksForConfirmation(t *testing.T) {
	out := capturePrint(t)
	a := newTestApp(t, "projects", "Keep me", "", "n", "y")
	ctx := context.Background()

	require.NoError(t, a.Create(ctx))
	id := a.service.List(ctx)[0].ID

	require.NoError(t, a.Delete(ctx, id))
	assert.Contains(t, *out, "Cancelled.")
	assert.Len(t, a.service.List(ctx), 1)

	require.NoError(t, a.Delete(ctx, id))
	assert.Contains(t, *out, "Deleted.")
	assert.Empty(t, a.service.List(ctx))

	err := a.Delete(ctx, id)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestApp_ShowEditViewPromptForID(t *testing.T) {
	out := capturePrint(t)
	a := newTestApp(t, "projects", "Portfolio", "")
	ctx := context.Background()
	require.NoError(t, a.Create(ctx))
	id := a.service.List(ctx)[0].ID

	a.reader = readerFromLines(id, id)
	require.NoError(t, a.Edit(ctx, ""))
	require.NoError(t, a.View(ctx, ""))
	require.NoError(t, a.Show(ctx, id))

	assert.Contains(t, *out, "Editing: Portfolio")
	assert.Contains(t, *out, "Viewing: Portfolio")
	assert.Contains(t, *out, "Name:        Portfolio")

	err := a.Show(ctx, "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, *out, `No website with id "nope".`)
}

func TestApp_Rename(t *testing.T) {
	capturePrint(t)
	a := newTestApp(t, "projects", "Old", "old description")
	ctx := context.Background()
	require.NoError(t, a.Create(ctx))
	id := a.service.List(ctx)[0].ID

	a.reader = readerFromLines("New", "-")
	require.NoError(t, a.Rename(ctx, id))
	got, err := a.service.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Empty(t, got.Description)

	a.reader = readerFromLines("", "kept name")
	require.NoError(t, a.Rename(ctx, id))
	got, err = a.service.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "kept name", got.Description)
}

func TestApp_WhoAmIStatsLogout(t *testing.T) {
	out := capturePrint(t)
	a := newTestApp(t, "projects", "One", "")
	ctx := context.Background()
	require.NoError(t, a.Create(ctx))

	require.NoError(t, a.WhoAmI(ctx))
	assert.Contains(t, *out, "tester")

	require.NoError(t, a.Stats(ctx))
	assert.Contains(t, *out, "1 websites: 0 pending, 1 generated, 0 completed")

	require.NoError(t, a.Logout(ctx))
	assert.Equal(t, "User", a.userName)
}

func TestApp_RunResolvesUserAndExits(t *testing.T) {
	out := capturePrint(t)
	oldTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = oldTerm })

	a := newTestApp(t, "projects", "whoami", "exit")
	a.config.Username = "alice"

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "alice", a.userName)
	assert.Contains(t, *out, "Welcome, alice! Type 'help' for commands.")
	assert.Contains(t, *out, "Bye!")
}

func TestNewApp_DurableUsesConfiguredStorage(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "rk.db")
	cfg.GenerationDelay = time.Millisecond
	ctx := context.Background()

	capturePrint(t)
	a, err := NewApp(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	a.reader = readerFromLines("Persisted", "")
	a.out = io.Discard
	require.NoError(t, a.Create(ctx))
	require.NoError(t, a.Close())

	b, err := NewApp(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	defer b.Close()

	recs := b.service.List(ctx)
	require.Len(t, recs, 1)
	assert.Equal(t, "Persisted", recs[0].Name)
}

func TestNewApp_StorageErrorAndTransientSkipsStorage(t *testing.T) {
	orig := openStorage
	t.Cleanup(func() { openStorage = orig })

	boom := errors.New("db down")
	calls := 0
	openStorage = func(context.Context, *config.Config) (*client.Storage, error) {
		calls++
		return nil, boom
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()

	_, err := NewApp(context.Background(), cfg, logging.Discard())
	require.ErrorIs(t, err, boom)

	cfg.Variant = "tasks"
	a, err := NewApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "transient variants never open storage")
	assert.NoError(t, a.Close())
}

func TestPreview(t *testing.T) {
	short := "short"
	assert.Equal(t, short, preview(short))

	long := strings.Repeat("é", 120)
	got := preview(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, 103, len([]rune(got)))
}
