package horoscopecache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/astromaster/internal/domain/horoscope"
)

type entry struct {
	content   horoscope.Content
	expiresAt time.Time
}

// MemoryCache is an in-process horoscope cache for tests/dev. A zero TTL
// keeps the entry until Clear.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]entry), now: time.Now}
}

// Get implements horoscope.Cache.
func (c *MemoryCache) Get(_ context.Context, key horoscope.Key) (horoscope.Content, bool, error) {
	name := key.CacheKey()
	c.mu.RLock()
	item, ok := c.entries[name]
	c.mu.RUnlock()
	if !ok {
		return horoscope.Content{}, false, nil
	}
	if c.expired(item.expiresAt) {
		c.mu.Lock()
		delete(c.entries, name)
		c.mu.Unlock()
		return horoscope.Content{}, false, nil
	}
	return item.content, true, nil
}

// Save caches content for ttl.
func (c *MemoryCache) Save(_ context.Context, content horoscope.Content, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[content.Key().CacheKey()] = entry{content: content, expiresAt: exp}
	return nil
}

// Clear drops every live entry and reports how many were removed.
func (c *MemoryCache) Clear(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for _, item := range c.entries {
		if !c.expired(item.expiresAt) {
			removed++
		}
	}
	c.entries = make(map[string]entry)
	return removed, nil
}

func (c *MemoryCache) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return !ts.After(c.now())
}

var _ horoscope.Cache = (*MemoryCache)(nil)
