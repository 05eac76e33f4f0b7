package routing

import (
	"fmt"
	"sync"
	"time"

	"github.com/cdst-net/netopt/netmodel"
)

// RouteResult is a resolved (distance, time) pair for one coordinate pair.
type RouteResult struct {
	DistanceKM      float64
	DurationMinutes float64
}

type cacheEntry struct {
	result    RouteResult
	expiresAt time.Time
}

// Cache is a bounded, TTL-expiring, concurrency-safe key-value cache of
// route results, shared across runs and process-scoped. Reads take RLock,
// writes take Lock. Entries are immutable once written; concurrent
// inserts for the same key are last-writer-wins, which is harmless
// because a cached value is a deterministic function of its key.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	maxEntries int
	ttl        time.Duration
	order      []string // coarse FIFO eviction order once maxEntries is exceeded
}

// NewCache returns a Cache bounded to maxEntries with the given TTL per
// entry. maxEntries <= 0 means unbounded; ttl <= 0 means entries never
// expire.
func NewCache(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{
		entries:    make(map[string]cacheEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// Key canonicalizes an (origin, destination) pair into a cache key.
func Key(origin, destination netmodel.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f->%.6f,%.6f", origin.Lat, origin.Lon, destination.Lat, destination.Lon)
}

// Get returns the cached result for key if present and unexpired.
func (c *Cache) Get(key string) (RouteResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return RouteResult{}, false
	}
	if c.ttl > 0 && time.Now().After(e.expiresAt) {
		return RouteResult{}, false
	}
	return e.result, true
}

// Set stores result under key, evicting the oldest entry first if the
// cache is at capacity. Last-writer-wins: a repeated Set for an existing
// key overwrites it without affecting eviction order correctness, since
// the value for a given key is always identical.
func (c *Cache) Set(key string, result RouteResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expires time.Time
	if c.ttl > 0 {
		expires = time.Now().Add(c.ttl)
	}

	if _, exists := c.entries[key]; !exists {
		if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = cacheEntry{result: result, expiresAt: expires}
}

// Len returns the current number of live (possibly expired) entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
