package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/keyloom/internal/pubsub"
	"github.com/zjrosen/keyloom/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan pubsub.Event[watcher.Change] {
	t.Helper()

	w, err := watcher.New(watcher.Config{
		Path:        path,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")

	ctx, cancel := context.WithCancel(context.Background())
	events := w.Broker().Subscribe(ctx)
	require.NoError(t, w.Start(), "failed to start watcher")

	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})
	return events
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: x"), 0644))

	events := startWatcher(t, path)

	// Rapid writes should coalesce into single notification
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("theme: x%d", i)), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case ev := <-events:
		assert.Equal(t, pubsub.ChangedEvent, ev.Type)
		assert.Equal(t, path, ev.Payload.Path)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-events:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.db")
	otherPath := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("db"), 0644))
	// Pre-create the other file so writes to it are just Write events
	require.NoError(t, os.WriteFile(otherPath, []byte("initial"), 0644))

	events := startWatcher(t, path)

	require.NoError(t, os.WriteFile(otherPath, []byte("other content"), 0644))

	select {
	case <-events:
		t.Fatal("unexpected notification for irrelevant file")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_WatchesWALFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.db")
	require.NoError(t, os.WriteFile(path, []byte("db"), 0644))

	events := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path+"-wal", []byte("wal data"), 0644))

	select {
	case <-events:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for WAL file")
	}
}

func TestWatcher_SeesAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: b"), 0644))

	events := startWatcher(t, path)

	tmp := filepath.Join(dir, ".prefs-123.yaml")
	require.NoError(t, os.WriteFile(tmp, []byte("a: c"), 0644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-events:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for rename onto store file")
	}
}

func TestWatcher_StopClosesSubscribers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.db")
	require.NoError(t, os.WriteFile(path, []byte("db"), 0644))

	w, err := watcher.New(watcher.DefaultConfig(path))
	require.NoError(t, err)
	events := w.Broker().Subscribe(context.Background())
	require.NoError(t, w.Start())

	require.NoError(t, w.Stop())

	select {
	case _, ok := <-events:
		require.False(t, ok, "subscriber channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed after Stop")
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing", "prefs.db")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.Error(t, w.Start())
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/x/prefs.db")
	require.Equal(t, "/x/prefs.db", cfg.Path)
	require.Equal(t, 250*time.Millisecond, cfg.DebounceDur)
}
