package cache

import (
	"sync"
	"time"
)

// entry is one memoized result.
type entry struct {
	payload    interface{}
	computedAt time.Time
	ttl        time.Duration
}

// TTLCache is a process-local memoization of expensive read queries. Entries
// are valid while now - computedAt < ttl; writes that change the underlying
// result must call Invalidate explicitly, the TTL is only a backstop.
//
// The cache is owned by the composition root and injected into services, so
// tests get per-test isolation and a shared cache tier could replace it
// without touching call sites.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]entry

	// Now is the clock; overridable in tests.
	Now func() time.Time
}

// New creates an empty cache.
func New() *TTLCache {
	return &TTLCache{
		entries: make(map[string]entry),
		Now:     time.Now,
	}
}

// Get returns the cached payload for key if the entry is still fresh.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.Now().Sub(e.computedAt) >= e.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.payload, true
}

// Set stores payload under key with a fresh timestamp.
func (c *TTLCache) Set(key string, payload interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		payload:    payload,
		computedAt: c.Now(),
		ttl:        ttl,
	}
}

// Invalidate drops the entries for the given keys.
func (c *TTLCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
	}
}
