package prefs

import (
	"context"
	"sync"
)

// MemoryBackend keeps preferences in a map. Nothing survives the process.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[Key]string
}

// NewMemoryBackend returns an empty backend, optionally seeded.
func NewMemoryBackend(seed map[Key]string) *MemoryBackend {
	values := make(map[Key]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &MemoryBackend{values: values}
}

// NewMemory returns a Store over an in-memory backend.
func NewMemory() *Persistent {
	return NewPersistent(NewMemoryBackend(nil))
}

func (m *MemoryBackend) Load(_ context.Context, key Key) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) Save(_ context.Context, key Key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryBackend) Close() error { return nil }

// Snapshot copies the stored values.
func (m *MemoryBackend) Snapshot() map[Key]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[Key]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
