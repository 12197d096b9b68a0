// Package ttlcache provides a process-wide concurrent map whose entries
// expire a fixed duration after they are written. Expiry is checked lazily
// on Get; there is no background sweep.
package ttlcache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	deadline time.Time
}

// Cache maps string keys to values with a fixed per-entry TTL.
// Safe for concurrent use. If two writers race on the same key the last
// write wins; entries are idempotent per key within their TTL, so this
// is tolerated rather than prevented.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value stored under key, or false if the key is absent
// or its entry has expired. Expired entries are removed on the spot.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Before(e.deadline) {
		return e.value, true
	}
	if ok {
		c.mu.Lock()
		// Re-check: another goroutine may have refreshed the entry.
		if e, ok := c.entries[key]; ok && !c.now().Before(e.deadline) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
	}
	var zero V
	return zero, false
}

// Set stores value under key with the cache's TTL, replacing any
// existing entry.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, deadline: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
