// Package cache provides the process-local response cache that sits in
// front of the evaluation client. Entries expire individually and are
// evicted lazily on read; there is no background sweep, so the cache's
// observable state is fully determined by the calls made against it.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/doomlabs/apocalypse-meter/internal/types"
)

// DefaultTTL is used when Set is called without an explicit expiry.
const DefaultTTL = 5 * time.Minute

// entry is one cached evaluation with its insertion time and lifetime.
type entry struct {
	data      types.EvaluationResult
	timestamp time.Time
	expiry    time.Duration
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.timestamp.Add(e.expiry))
}

// ResponseCache is a thread-safe TTL cache for evaluation results.
type ResponseCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
}

// NewResponseCache creates a cache with the given default TTL.
// A non-positive ttl falls back to DefaultTTL.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{
		entries:    make(map[string]entry),
		defaultTTL: ttl,
	}
}

// Set stores a result under key, overwriting unconditionally. A zero or
// negative expiry uses the cache default.
func (c *ResponseCache) Set(key string, data types.EvaluationResult, expiry time.Duration) {
	if expiry <= 0 {
		expiry = c.defaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, timestamp: time.Now(), expiry: expiry}
}

// Get returns the cached result and true when a live entry exists.
// An expired entry is deleted before reporting a miss.
func (c *ResponseCache) Get(key string) (types.EvaluationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return types.EvaluationResult{}, false
	}
	if e.expired(time.Now()) {
		delete(c.entries, key)
		return types.EvaluationResult{}, false
	}
	return e.data, true
}

// Has reports whether a live entry exists without mutating the cache.
func (c *ResponseCache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return ok && !e.expired(time.Now())
}

// Clear empties the whole cache.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Size returns the number of entries currently held, expired or not.
func (c *ResponseCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cache statistics for the operational endpoint.
func (c *ResponseCache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	expired := 0
	for _, e := range c.entries {
		if e.expired(now) {
			expired++
		}
	}

	return map[string]interface{}{
		"total_items":         len(c.entries),
		"expired_items":       expired,
		"active_items":        len(c.entries) - expired,
		"default_ttl_seconds": c.defaultTTL.Seconds(),
	}
}

// EvaluationKey builds the cache key for an evaluation request. The key is
// order-sensitive in the answers: callers sort answers by question index
// before reaching this point, so differing order means differing input.
func EvaluationKey(scenarioID string, answers []string, locale string) string {
	return "evaluation:" + scenarioID + ":" + locale + ":" + strings.Join(answers, "|")
}
