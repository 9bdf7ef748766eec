package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
	ids   []string
	err   error
}

func (f *fakeExec) record(name, id string) error {
	f.calls = append(f.calls, name)
	f.ids = append(f.ids, id)
	return f.err
}

func (f *fakeExec) List(context.Context) error               { return f.record("list", "") }
func (f *fakeExec) Create(context.Context) error             { return f.record("create", "") }
func (f *fakeExec) Show(_ context.Context, id string) error   { return f.record("show", id) }
func (f *fakeExec) Edit(_ context.Context, id string) error   { return f.record("edit", id) }
func (f *fakeExec) View(_ context.Context, id string) error   { return f.record("view", id) }
func (f *fakeExec) Rename(_ context.Context, id string) error { return f.record("rename", id) }
func (f *fakeExec) Done(_ context.Context, id string) error   { return f.record("done", id) }
func (f *fakeExec) Delete(_ context.Context, id string) error { return f.record("delete", id) }
func (f *fakeExec) WhoAmI(context.Context) error             { return f.record("whoami", "") }
func (f *fakeExec) Stats(context.Context) error              { return f.record("stats", "") }
func (f *fakeExec) Logout(context.Context) error             { return f.record("logout", "") }

// capturePrint swaps printlnFn for the duration of the test and returns the
// collected lines.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = toString(v)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// capturePrompt records everything written through printFn.
func capturePrompt(t *testing.T) *[]string {
	t.Helper()
	var prompts []string
	orig := printFn
	printFn = func(a ...any) (int, error) {
		for _, v := range a {
			prompts = append(prompts, toString(v))
		}
		return 0, nil
	}
	t.Cleanup(func() { printFn = orig })
	return &prompts
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := capturePrint(t)
	prompts := capturePrompt(t)

	input := strings.Join([]string{
		"help",
		"",
		"l",
		"add",
		"show abc",
		"edit",
		"view v1",
		"rename r1",
		"done d1",
		"delete x1",
		"whoami",
		"stats",
		"logout",
		"foobar",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)), nil)

	assert.Equal(t, []string{"list", "create", "show", "edit", "view", "rename", "done", "delete", "whoami", "stats", "logout"}, exec.calls)
	assert.Equal(t, []string{"", "", "abc", "", "v1", "r1", "d1", "x1", "", "", ""}, exec.ids)
	assert.Contains(t, *out, helpText)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
	for _, line := range *out {
		assert.NotContains(t, line, "rk status> ", "prompt must not end with a newline")
	}
	require.NotEmpty(t, *prompts)
	assert.Equal(t, "rk status> ", (*prompts)[0])
}

func TestRunREPL_EOFEndsLoopAndLastLineRuns(t *testing.T) {
	capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, nil, bufio.NewReader(strings.NewReader("list\nstats")), nil)

	assert.Equal(t, []string{"list", "stats"}, exec.calls)
}

func TestRunREPL_ErrorsGoToHandler(t *testing.T) {
	out := capturePrint(t)
	prompts := capturePrompt(t)

	boom := errors.New("boom")
	exec := &fakeExec{err: boom}
	var got []error
	runREPL(context.Background(), exec, nil, bufio.NewReader(strings.NewReader("list\nwhoami\nquit\n")), func(err error) {
		got = append(got, err)
	})

	require.Len(t, got, 2)
	assert.ErrorIs(t, got[0], boom)
	for _, line := range *out {
		assert.NotContains(t, line, "rk ", "no status line without statusFn")
	}
	assert.Empty(t, *prompts)
}
