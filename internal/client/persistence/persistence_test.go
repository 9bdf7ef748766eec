package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/client/models"
	"github.com/dmitrijs2005/recordkeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	getErr error
	setErr error
}

func (f *failingRepo) Get(context.Context, string) ([]byte, error) { return nil, f.getErr }
func (f *failingRepo) Set(context.Context, string, []byte) error  { return f.setErr }
func (f *failingRepo) Delete(context.Context, string) error       { return nil }

func sample() []models.Record {
	ts := time.Date(2025, 3, 1, 10, 30, 0, 123456789, time.UTC)
	return []models.Record{
		{ID: "b", Name: "Second first", Description: "", CreatedAt: ts, Status: models.StatusGenerated},
		{ID: "a", Name: "Landing", Description: "Ünïcode ok", CreatedAt: ts.Add(time.Second), Status: models.StatusPending, DueDate: "2025-04-01"},
	}
}

func TestDurable_RoundTripKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()
	d := NewDurable(repo, "userProjects", logging.Discard())

	want := sample()
	require.NoError(t, d.Save(ctx, want))

	got, err := NewDurable(repo, "userProjects", logging.Discard()).Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDurable_LoadAbsentSlotIsEmpty(t *testing.T) {
	d := NewDurable(slots.NewMemoryRepository(), "userProjects", logging.Discard())

	got, err := d.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDurable_LoadCorruptSlotIsEmpty(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"{not json", `{"id":"x"}`, "null"} {
		repo := slots.NewMemoryRepository()
		require.NoError(t, repo.Set(ctx, "k", []byte(raw)))

		got, err := NewDurable(repo, "k", logging.Discard()).Load(ctx)
		require.NoError(t, err, raw)
		assert.Empty(t, got, raw)
	}
}

func TestDurable_SaveEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()

	require.NoError(t, NewDurable(repo, "k", logging.Discard()).Save(ctx, nil))

	raw, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestDurable_WireFormat(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()
	rec := sample()[1]

	require.NoError(t, NewDurable(repo, "k", logging.Discard()).Save(ctx, []models.Record{rec}))

	raw, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": "a",
		"name": "Landing",
		"description": "Ünïcode ok",
		"createdAt": "2025-03-01T10:30:01.123456789Z",
		"status": "pending",
		"dueDate": "2025-04-01"
	}]`, string(raw))
}

func TestDurable_BackendErrorsWrapPersistence(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	d := NewDurable(&failingRepo{getErr: boom, setErr: boom}, "k", logging.Discard())

	_, err := d.Load(ctx)
	require.ErrorIs(t, err, common.ErrPersistence)

	err = d.Save(ctx, sample())
	require.ErrorIs(t, err, common.ErrPersistence)
	assert.Contains(t, err.Error(), "disk full")
}

func TestTransient_StartsEmptyAndCopies(t *testing.T) {
	ctx := context.Background()
	tr := NewTransient()

	got, err := tr.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	in := sample()
	require.NoError(t, tr.Save(ctx, in))
	in[0].Name = "mutated after save"

	got, err = tr.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Second first", got[0].Name)

	assert.Empty(t, mustLoad(t, NewTransient()), "a fresh transient adapter forgets everything")
}

func mustLoad(t *testing.T, a Adapter) []models.Record {
	t.Helper()
	got, err := a.Load(context.Background())
	require.NoError(t, err)
	return got
}

func TestForVariant(t *testing.T) {
	repo := slots.NewMemoryRepository()

	assert.IsType(t, &Durable{}, ForVariant(models.Projects, repo, logging.Discard()))
	assert.IsType(t, &Transient{}, ForVariant(models.Tasks, repo, logging.Discard()))
}
