// Package cache provides an in-memory key-value cache whose entries expire a
// fixed duration after they are stored.
package cache

import (
	"sync"
	"time"
)

type (
	// Cache maps string keys to values of type V. An entry is stale once its
	// age reaches the TTL; stale entries are evicted by the Get that finds
	// them; there is no background sweep and no size bound.
	Cache[V any] struct {
		ttl time.Duration
		now func() time.Time

		mu      sync.Mutex
		entries map[string]entry[V]
	}

	entry[V any] struct {
		value    V
		storedAt time.Time
	}

	Option func(*options)

	options struct {
		now func() time.Time
	}
)

// WithClock overrides the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New constructs a cache with the given TTL. A TTL of zero or less renders
// every entry stale on its next read.
func New[V any](ttl time.Duration, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return &Cache[V]{
		ttl:     max(ttl, 0),
		now:     o.now,
		entries: make(map[string]entry[V]),
	}
}

// TTL returns the maximum age of a cached value.
func (c *Cache[V]) TTL() time.Duration { return c.ttl }

// Set stores value under key, replacing any existing entry.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
}

// Get returns the value stored under key, and whether it was found fresh.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Delete removes the entry for key, if any.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}

// Len returns the number of entries held, including stale entries that have
// yet to be read.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
