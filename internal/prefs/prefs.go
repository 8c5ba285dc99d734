// Package prefs persists the small set of user preferences keyloom keeps
// across sessions. Persistence is best-effort: a failing backend degrades to
// absent reads and dropped writes, never to an error the UI has to handle.
package prefs

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/keyloom/internal/log"
)

// Key names a persisted preference.
type Key string

const (
	// KeyTheme holds the JSON encoded theme preference.
	KeyTheme Key = "theme"
	// KeyFocusedMode holds "true" or "false".
	KeyFocusedMode Key = "focused-mode"
)

// Keys returns every known preference key.
func Keys() []Key {
	return []Key{KeyTheme, KeyFocusedMode}
}

// Valid reports whether k is a known preference key.
func (k Key) Valid() bool {
	for _, known := range Keys() {
		if k == known {
			return true
		}
	}
	return false
}

// Store is the key-value contract the rest of the app depends on.
type Store interface {
	Get(key Key) (string, bool)
	Set(key Key, value string)
}

// Backend is a durable medium for preferences.
type Backend interface {
	// Load returns the stored value. found is false when nothing is stored.
	Load(ctx context.Context, key Key) (value string, found bool, err error)
	Save(ctx context.Context, key Key, value string) error
	Close() error
}

// Flusher is implemented by backends that hold stale copies of stored values.
type Flusher interface {
	Flush(ctx context.Context)
}

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown preference backend")

// Persistent is a Store over a Backend.
type Persistent struct {
	backend Backend
	tracer  trace.Tracer
}

// Option configures a Persistent store.
type Option func(*Persistent)

// WithTracer records a span for every store operation.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Persistent) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

// NewPersistent wraps backend as a Store.
func NewPersistent(backend Backend, opts ...Option) *Persistent {
	p := &Persistent{
		backend: backend,
		tracer:  noop.NewTracerProvider().Tracer("prefs"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ Store = (*Persistent)(nil)

// Get returns the stored value for key. Backend failures read as absent.
func (p *Persistent) Get(key Key) (string, bool) {
	ctx, span := p.tracer.Start(context.Background(), "prefs.get",
		trace.WithAttributes(attribute.String("prefs.key", string(key))))
	defer span.End()

	value, found, err := p.backend.Load(ctx, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn(log.CatPrefs, "Preference read failed", "key", key, "error", err)
		return "", false
	}
	span.SetAttributes(attribute.Bool("prefs.found", found))
	if !found {
		log.Debug(log.CatPrefs, "Preference absent", "key", key)
	}
	return value, found
}

// Set stores value under key. Backend failures are logged and dropped.
func (p *Persistent) Set(key Key, value string) {
	ctx, span := p.tracer.Start(context.Background(), "prefs.set",
		trace.WithAttributes(attribute.String("prefs.key", string(key))))
	defer span.End()

	if err := p.backend.Save(ctx, key, value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn(log.CatPrefs, "Preference write failed", "key", key, "error", err)
		return
	}
	log.Debug(log.CatPrefs, "Preference written", "key", key)
}

// Refresh drops cached values so the next Get reads the medium.
func (p *Persistent) Refresh() {
	if f, ok := p.backend.(Flusher); ok {
		f.Flush(context.Background())
	}
}

// Close releases the backend.
func (p *Persistent) Close() error {
	return p.backend.Close()
}
