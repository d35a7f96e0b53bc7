// Package cache provides an in-memory TTL cache for map responses. Snapshot
// mapping is deterministic for a given page, so repeated requests for the
// same URL can skip the fetch and traversal entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/dredding8/malibu-ui-private/models"
)

// entry holds a cached response with its creation timestamp.
type entry struct {
	response  *models.MapResponse
	createdAt time.Time
}

// Cache is a bounded in-memory cache for map responses, safe for
// concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
}

// New creates a Cache holding at most maxEntries responses for ttl each.
// A background goroutine evicts expired entries every 5 minutes.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}

	go c.cleanupLoop()
	return c
}

// Key generates a cache key from the snapshot URL and the landmark plan.
func Key(url, page string) string {
	h := sha256.New()
	h.Write([]byte(url))
	h.Write([]byte("|"))
	h.Write([]byte(page))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached response if it exists and has not expired.
func (c *Cache) Get(key string) (*models.MapResponse, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.ttl {
		return nil, false
	}
	return e.response, true
}

// Set stores a response. At capacity, one random entry is evicted to make
// room (map iteration order is random in Go).
func (c *Cache) Set(key string, resp *models.MapResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		response:  resp,
		createdAt: time.Now(),
	}
}

// cleanupLoop evicts expired entries every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		c.mu.Lock()
		for k, e := range c.store {
			if time.Since(e.createdAt) > c.ttl {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
