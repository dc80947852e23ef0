package board

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/ptran/taskboard/internal/handle"
	"github.com/ptran/taskboard/internal/mirror"
	"github.com/ptran/taskboard/internal/store"
)

// newTestSession wires a session over an in-memory store, an in-memory
// filesystem, and an in-memory keyring.
func newTestSession(t *testing.T, opts Options) (*Session, *store.SQLiteStore, afero.Fs) {
	t.Helper()

	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	fsys := afero.NewMemMapFs()
	logger := log.New(io.Discard)
	handles := handle.NewStore(keyring.NewArrayKeyring(nil), fsys, logger)

	opts.Store = st
	opts.Handles = handles
	opts.Mirror = mirror.New(fsys, handles, logger)
	opts.Logger = logger

	s := NewSession(opts)
	t.Cleanup(s.Close)
	return s, st, fsys
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

// grantTestFolder creates /mirror on the test filesystem and grants it.
func grantTestFolder(t *testing.T, s *Session, fsys afero.Fs) {
	t.Helper()
	if err := fsys.MkdirAll("/mirror", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := s.GrantFolder(context.Background(), "/mirror"); err != nil {
		t.Fatalf("granting test folder: %v", err)
	}
}
