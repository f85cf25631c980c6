// Package cache provides the analysis result cache. Results are keyed by
// (ticker, trading day), so a ticker is analyzed at most once per day until
// the entry expires. The cache is injected into the orchestrator rather
// than living as ambient package state.
package cache

import (
	"sync"
	"time"

	"github.com/warrenlab/warren/internal/types"
)

// Cache stores analysis reports keyed by ticker and day.
type Cache interface {
	// Get returns the cached report for the ticker on the given day.
	Get(ticker string, day time.Time) (types.Report, bool)
	// Set stores a report for the ticker on the given day.
	Set(ticker string, day time.Time, report types.Report)
	// Purge removes every entry.
	Purge()
}

type cacheKey struct {
	ticker string
	day    string
}

type cacheEntry struct {
	report    types.Report
	expiresAt time.Time
}

// MemoryCache is an in-memory Cache with TTL eviction. Expired entries are
// dropped lazily on read.
type MemoryCache struct {
	ttl     time.Duration
	entries map[cacheKey]cacheEntry
	mu      sync.RWMutex
	now     func() time.Time
}

// NewMemoryCache creates a cache whose entries expire after ttl. A
// non-positive ttl keeps entries until Purge.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
		now:     time.Now,
	}
}

func keyFor(ticker string, day time.Time) cacheKey {
	return cacheKey{
		ticker: ticker,
		day:    day.Format("2006-01-02"),
	}
}

// Get implements Cache.
func (c *MemoryCache) Get(ticker string, day time.Time) (types.Report, bool) {
	key := keyFor(ticker, day)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return types.Report{}, false
	}

	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()

		return types.Report{}, false
	}

	return entry.report, true
}

// Set implements Cache.
func (c *MemoryCache) Set(ticker string, day time.Time, report types.Report) {
	entry := cacheEntry{report: report}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[keyFor(ticker, day)] = entry
	c.mu.Unlock()
}

// Purge implements Cache.
func (c *MemoryCache) Purge() {
	c.mu.Lock()
	c.entries = make(map[cacheKey]cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
