package pathfinding

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"hexpath/core"
)

// cacheKey identifies a cached query.
type cacheKey struct {
	start, goal core.Hex
}

type cacheEntry struct {
	result   *Result
	storedAt time.Time
}

// ResultCache stores successful search results keyed by (start, goal).
// Entries expire after the TTL. When the cache is full a new insert clears
// it wholesale rather than evicting one entry; paths on a tactical map go
// stale together far more often than one at a time, so selective eviction
// buys little.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
	maxSize int
	ttl     time.Duration

	hits      int64 // atomic
	misses    int64 // atomic
	evictions int64 // atomic

	now func() time.Time // swapped out by tests
}

// NewResultCache creates a cache holding up to maxSize entries for up to
// ttl each. maxSize <= 0 means unbounded; ttl <= 0 means entries never
// expire by age.
func NewResultCache(maxSize int, ttl time.Duration) *ResultCache {
	return &ResultCache{
		entries: make(map[cacheKey]cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached result for the query if present and fresh.
func (rc *ResultCache) Get(start, goal core.Hex) (*Result, bool) {
	key := cacheKey{start: start, goal: goal}

	rc.mu.RLock()
	entry, found := rc.entries[key]
	rc.mu.RUnlock()

	if found && rc.ttl > 0 && rc.now().Sub(entry.storedAt) >= rc.ttl {
		rc.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// refreshed the entry.
		if e, ok := rc.entries[key]; ok && rc.now().Sub(e.storedAt) >= rc.ttl {
			delete(rc.entries, key)
		}
		rc.mu.Unlock()
		found = false
	}

	if found {
		atomic.AddInt64(&rc.hits, 1)
		return entry.result, true
	}
	atomic.AddInt64(&rc.misses, 1)
	return nil, false
}

// Put stores a result. On overflow the whole cache is cleared first.
func (rc *ResultCache) Put(start, goal core.Hex, result *Result) {
	key := cacheKey{start: start, goal: goal}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.maxSize > 0 && len(rc.entries) >= rc.maxSize {
		if _, exists := rc.entries[key]; !exists {
			atomic.AddInt64(&rc.evictions, int64(len(rc.entries)))
			rc.entries = make(map[cacheKey]cacheEntry)
		}
	}
	rc.entries[key] = cacheEntry{result: result, storedAt: rc.now()}
}

// Invalidate removes every entry whose endpoints or path touch any of the
// given cells. With no arguments it clears everything.
func (rc *ResultCache) Invalidate(cells ...core.Hex) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if len(cells) == 0 {
		atomic.AddInt64(&rc.evictions, int64(len(rc.entries)))
		rc.entries = make(map[cacheKey]cacheEntry)
		return
	}
	for key, entry := range rc.entries {
		if rc.entryTouches(key, entry, cells) {
			delete(rc.entries, key)
			atomic.AddInt64(&rc.evictions, 1)
		}
	}
}

func (rc *ResultCache) entryTouches(key cacheKey, entry cacheEntry, cells []core.Hex) bool {
	for _, c := range cells {
		if key.start == c || key.goal == c || entry.result.Touches(c) {
			return true
		}
	}
	return false
}

// Clear removes all entries and resets the counters.
func (rc *ResultCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.entries = make(map[cacheKey]cacheEntry)
	atomic.StoreInt64(&rc.hits, 0)
	atomic.StoreInt64(&rc.misses, 0)
	atomic.StoreInt64(&rc.evictions, 0)
}

// Stats returns hit, miss, eviction and size counters.
func (rc *ResultCache) Stats() (hits, misses, evictions, size int) {
	rc.mu.RLock()
	size = len(rc.entries)
	rc.mu.RUnlock()

	hits = int(atomic.LoadInt64(&rc.hits))
	misses = int(atomic.LoadInt64(&rc.misses))
	evictions = int(atomic.LoadInt64(&rc.evictions))
	return hits, misses, evictions, size
}

// String returns a one-line statistics summary.
func (rc *ResultCache) String() string {
	hits, misses, evictions, size := rc.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return fmt.Sprintf("ResultCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, rc.maxSize, hits, misses, hitRate, evictions)
}
