package prefs

import (
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/keyloom/internal/config"
	"github.com/zjrosen/keyloom/internal/log"
)

// Open builds the Store described by cfg. The returned path is the file a
// watcher should observe; it is empty for the memory backend.
func Open(cfg config.StoreConfig, tracer trace.Tracer) (*Persistent, string, error) {
	var (
		backend Backend
		path    = cfg.ResolvedPath()
	)

	switch cfg.Backend {
	case config.BackendSQLite, "":
		if path == "" {
			return nil, "", fmt.Errorf("sqlite backend: no path and no home directory")
		}
		db, err := NewSQLiteBackend(path)
		if err != nil {
			return nil, "", fmt.Errorf("opening preference database: %w", err)
		}
		backend = db
	case config.BackendFile:
		if path == "" {
			return nil, "", fmt.Errorf("file backend: no path and no home directory")
		}
		backend = NewFileBackend(path)
	case config.BackendMemory:
		backend = NewMemoryBackend(nil)
		path = ""
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if cfg.CacheTTL > 0 {
		backend = NewCachedBackend(backend, cfg.CacheTTL)
	}

	log.Info(log.CatPrefs, "Opened preference store", "backend", cfg.Backend, "path", path, "cache_ttl", cfg.CacheTTL)
	return NewPersistent(backend, WithTracer(tracer)), path, nil
}
