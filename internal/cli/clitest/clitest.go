// Package clitest builds command contexts for tests.
package clitest

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/notifier"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/tracker"
	"github.com/julianstephens/tally/internal/utils"
)

// Clock is a settable test clock.
type Clock struct {
	T time.Time
}

func (c *Clock) Now() time.Time { return c.T }

// Start is the default test time: Friday 2024-03-01 09:00 UTC.
var Start = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// New returns a context over an in-memory backend, its output buffer and
// its clock.
func New(t *testing.T) (*cli.Context, *bytes.Buffer, *Clock) {
	t.Helper()
	return NewWithBackend(t, storage.NewMemoryBackend())
}

// NewSQLite is like New but stores documents in a SQLite file in a temp dir.
func NewSQLite(t *testing.T) (*cli.Context, *bytes.Buffer, *Clock) {
	t.Helper()
	b := storage.NewSQLiteBackend(filepath.Join(t.TempDir(), "tally.db"))
	if err := b.Open(); err != nil {
		t.Fatalf("failed to open sqlite backend: %v", err)
	}
	return NewWithBackend(t, b)
}

func NewWithBackend(t *testing.T, backend storage.Backend) (*cli.Context, *bytes.Buffer, *Clock) {
	t.Helper()
	clock := &Clock{T: Start}
	store := storage.New(backend)
	svc, err := tracker.New(store, tracker.Options{Clock: clock, Location: time.UTC})
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}
	t.Cleanup(func() { svc.Close() })

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Tracker:  svc,
		Store:    store,
		Notifier: notifier.New(out),
		Location: time.UTC,
		Clock:    clock,
		Out:      out,
		Confirm: func(string, string) (bool, error) {
			t.Fatal("unexpected confirmation prompt")
			return false, nil
		},
	}
	return ctx, out, clock
}

// Answer makes ctx answer every confirmation with ok.
func Answer(ctx *cli.Context, ok bool) {
	ctx.Confirm = func(string, string) (bool, error) { return ok, nil }
}

var _ utils.Clock = (*Clock)(nil)
