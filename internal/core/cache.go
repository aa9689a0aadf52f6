package core

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is an in-process Cache with a fixed capacity and per-entry TTL.
// Entries beyond capacity are evicted least-recently-used first; expired
// entries are dropped on read. Safe for concurrent use.
type MemoryCache struct {
	entries *expirable.LRU[string, []byte]
}

// NewMemoryCache creates a MemoryCache holding at most size entries, each
// expiring ttl after insertion.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{entries: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get returns the cached value for key, if present and not expired.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := c.entries.Get(key)
	return value, ok, nil
}

// Set stores value under key, replacing any previous entry.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	c.entries.Add(key, value)
	return nil
}

// Len returns the number of live entries.
func (c *MemoryCache) Len() int {
	return c.entries.Len()
}
