package market

import (
	"sync"
	"time"
)

// Cache stores fetched market data for a limited time.
type Cache interface {
	// Get returns the value for key if it has not expired.
	Get(key string) (any, bool)
	// Set stores value under key for ttl.
	Set(key string, value any, ttl time.Duration)
}

type cacheEntry struct {
	value   any
	expires time.Time
}

// TTLCache is an in-memory Cache.
type TTLCache struct {
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewTTLCache creates an empty TTLCache. A nil now uses time.Now.
func NewTTLCache(now func() time.Time) *TTLCache {
	if now == nil {
		now = time.Now
	}
	return &TTLCache{
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// Get implements Cache.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set implements Cache.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expires: c.now().Add(ttl)}
}
