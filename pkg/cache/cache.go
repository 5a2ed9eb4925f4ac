// Package cache provides the response caches used by the resolver: bounded,
// TTL-based maps that evict in strict insertion order. Recency does not
// matter; a record survives until it expires or until it is the oldest
// record in a full cache.
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock returns the current time. Tests inject a fake to control expiry.
type Clock func() time.Time

type record[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is a bounded key→value map with TTL expiry and insertion-order
// eviction. Safe for concurrent use.
type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	now     Clock

	entries map[string]record[V]
	order   []string

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache holding at most maxSize records, each valid for ttl.
// A nil clock uses time.Now.
func New[V any](ttl time.Duration, maxSize int, now Clock) *Cache[V] {
	if maxSize <= 0 {
		maxSize = 1
	}
	if now == nil {
		now = time.Now
	}
	return &Cache[V]{
		ttl:     ttl,
		maxSize: maxSize,
		now:     now,
		entries: make(map[string]record[V]),
	}
}

// Get returns the cached value for key. An expired record counts as a miss
// and is removed.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	if c.now().Sub(rec.insertedAt) > c.ttl {
		c.removeLocked(key)
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	return rec.value, true
}

// Put stores value under key. Re-inserting an existing key moves it to the
// back of the eviction order. When the cache is full, expired records are
// swept first; if it is still full, the earliest-inserted record is evicted.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.removeLocked(key)
	}
	if len(c.entries) >= c.maxSize {
		c.sweepExpiredLocked()
	}
	if len(c.entries) >= c.maxSize && len(c.order) > 0 {
		c.removeLocked(c.order[0])
	}
	c.entries[key] = record[V]{value: value, insertedAt: c.now()}
	c.order = append(c.order, key)
}

// Len reports the number of records currently held, including any that have
// expired but not yet been swept.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *Cache[V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache[V]) sweepExpiredLocked() {
	now := c.now()
	kept := c.order[:0]
	for _, key := range c.order {
		rec, ok := c.entries[key]
		if !ok {
			continue
		}
		if now.Sub(rec.insertedAt) > c.ttl {
			delete(c.entries, key)
			continue
		}
		kept = append(kept, key)
	}
	c.order = kept
}

func (c *Cache[V]) removeLocked(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
