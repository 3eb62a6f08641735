// Package resultcache memoizes full search responses keyed by the
// canonical query key, with TTL expiry and two-stage size eviction.
package resultcache

import (
	"sync"
	"time"

	"github.com/casefind/casefind/internal/domain/search/result"
	"github.com/casefind/casefind/internal/metrics"
)

// Default sizing. Tuning knobs, overridable via config.
const (
	DefaultTTL      = 5 * time.Minute
	DefaultCeiling  = 1000
	DefaultLowWater = 800
)

type entry struct {
	response  result.Response
	createdAt time.Time
	expiresAt time.Time
}

// Cache is a mutex-guarded TTL response cache. When the entry count
// exceeds the ceiling, a put first purges expired entries, then evicts
// oldest-by-creation entries down to the low-water mark. This keeps
// growth bounded under sustained unique-query load.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	order    []string // creation order, oldest first
	ttl      time.Duration
	ceiling  int
	lowWater int
	now      func() time.Time
}

// New creates a cache. Non-positive parameters fall back to defaults;
// a low-water mark at or above the ceiling is pulled down to 80% of it.
func New(ttl time.Duration, ceiling, lowWater int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	if lowWater <= 0 || lowWater >= ceiling {
		lowWater = ceiling * 8 / 10
	}
	return &Cache{
		entries:  make(map[string]entry),
		ttl:      ttl,
		ceiling:  ceiling,
		lowWater: lowWater,
		now:      time.Now,
	}
}

// Get returns the cached response for a key. Stale entries are removed
// and reported as a miss.
func (c *Cache) Get(key string) (result.Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		metrics.ResultCacheTotal.WithLabelValues("miss").Inc()
		return result.Response{}, false
	}
	if !c.now().Before(e.expiresAt) {
		c.remove(key)
		metrics.ResultCacheTotal.WithLabelValues("miss").Inc()
		return result.Response{}, false
	}

	metrics.ResultCacheTotal.WithLabelValues("hit").Inc()
	return e.response, true
}

// Put stores a response and runs the eviction pass if the cache grew
// past the ceiling.
func (c *Cache) Put(key string, resp result.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; exists {
		c.remove(key)
	}
	c.entries[key] = entry{response: resp, createdAt: now, expiresAt: now.Add(c.ttl)}
	c.order = append(c.order, key)

	if len(c.entries) > c.ceiling {
		c.evict()
	}
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Invalidate drops every entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.order = c.order[:0]
}

// evict runs the two-stage pass: expired first, then oldest-by-creation
// until the low-water mark. Caller holds the lock.
func (c *Cache) evict() {
	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			c.remove(key)
		}
	}

	for len(c.entries) > c.lowWater && len(c.order) > 0 {
		c.remove(c.order[0])
	}
}

// remove deletes a key from the map and the order slice. Caller holds
// the lock.
func (c *Cache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
