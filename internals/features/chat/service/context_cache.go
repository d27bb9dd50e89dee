package service

import (
	"sync"
	"time"
)

const contextCacheTTL = 5 * time.Minute

// contextCache memoizes context-fetch results per wall-clock bucket.
// Entries computed in the same 5-minute bucket are shared across
// requests; a new bucket invalidates everything fetched before it.
type contextCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	bucket int64
	value  string
}

func newContextCache() *contextCache {
	return &contextCache{entries: make(map[string]cacheEntry)}
}

func cacheBucket(now time.Time) int64 {
	return now.Unix() / int64(contextCacheTTL.Seconds())
}

// getOrFetch returns the cached value for key when it belongs to the
// current bucket, otherwise calls fetch and stores the result.
func (c *contextCache) getOrFetch(key string, now time.Time, fetch func() string) string {
	bucket := cacheBucket(now)

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && entry.bucket == bucket {
		c.mu.Unlock()
		return entry.value
	}
	c.mu.Unlock()

	value := fetch()

	c.mu.Lock()
	c.entries[key] = cacheEntry{bucket: bucket, value: value}
	c.mu.Unlock()
	return value
}
