package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/keyloom/internal/prefs"
)

// NewSQLiteStore opens a preference store on a fresh SQLite file under
// t.TempDir(), seeded with values. It is closed when the test ends.
func NewSQLiteStore(t *testing.T, seed map[prefs.Key]string) (*prefs.Persistent, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.db")
	backend, err := prefs.NewSQLiteBackend(path)
	require.NoError(t, err)

	store := prefs.NewPersistent(backend)
	t.Cleanup(func() { _ = store.Close() })
	for k, v := range seed {
		store.Set(k, v)
	}
	return store, path
}
