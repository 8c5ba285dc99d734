package prefs

import (
	"context"
	"time"

	"github.com/zjrosen/keyloom/internal/cachemanager"
)

type cacheEntry struct {
	value string
	found bool
}

// CachedBackend is a read-through cache over another Backend.
// Absent keys are cached too. Saves write through and update the cache.
type CachedBackend struct {
	inner Backend
	cache cachemanager.CacheManager[Key, cacheEntry]
	ttl   time.Duration
}

// NewCachedBackend wraps inner. A non-positive ttl uses the cache default.
func NewCachedBackend(inner Backend, ttl time.Duration) *CachedBackend {
	if ttl <= 0 {
		ttl = cachemanager.DefaultExpiration
	}
	return &CachedBackend{
		inner: inner,
		cache: cachemanager.NewInMemoryCacheManager[Key, cacheEntry]("prefs", ttl, cachemanager.DefaultCleanupInterval),
		ttl:   ttl,
	}
}

func (c *CachedBackend) Load(ctx context.Context, key Key) (string, bool, error) {
	if entry, ok := c.cache.Get(ctx, key); ok {
		return entry.value, entry.found, nil
	}

	value, found, err := c.inner.Load(ctx, key)
	if err != nil {
		return "", false, err
	}
	c.cache.Set(ctx, key, cacheEntry{value: value, found: found}, c.ttl)
	return value, found, nil
}

func (c *CachedBackend) Save(ctx context.Context, key Key, value string) error {
	if err := c.inner.Save(ctx, key, value); err != nil {
		c.cache.Delete(ctx, key)
		return err
	}
	c.cache.Set(ctx, key, cacheEntry{value: value, found: true}, c.ttl)
	return nil
}

// Flush drops every cached entry.
func (c *CachedBackend) Flush(ctx context.Context) {
	c.cache.Flush(ctx)
	if f, ok := c.inner.(Flusher); ok {
		f.Flush(ctx)
	}
}

func (c *CachedBackend) Close() error {
	c.cache.Flush(context.Background())
	return c.inner.Close()
}
