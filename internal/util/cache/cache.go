// Package cache is an in-process TTL key-value store. It is advisory only:
// callers must treat every read as a hint and fall back to the database on a
// miss. Entries carry a bounded TTL as a backstop against missed
// invalidations.
package cache

import (
	"strings"
	"sync"
	"time"
)

const DefaultTTL = 10 * time.Minute

type entry struct {
	value     any
	expiresAt time.Time
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	stop    chan struct{}
}

func New() *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}

	go c.runJanitor()

	return c
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}

	return e.value, true
}

func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 || ttl > DefaultTTL {
		ttl = DefaultTTL
	}

	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// DeletePrefix removes every entry whose key starts with prefix. Used to
// invalidate all per-user projections of a single resource at once.
func (c *Cache) DeletePrefix(prefix string) {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Increment bumps an integer counter and refreshes its TTL only on first
// write, so a counter expires a fixed window after it was started.
func (c *Cache) Increment(key string, ttl time.Duration) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	e, ok := c.entries[key]
	if !ok || now.After(e.expiresAt) {
		c.entries[key] = entry{value: int64(1), expiresAt: now.Add(ttl)}
		return 1
	}

	count, _ := e.value.(int64)
	count++
	c.entries[key] = entry{value: count, expiresAt: e.expiresAt}

	return count
}

func (c *Cache) Close() {
	close(c.stop)
}

func (c *Cache) runJanitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

var (
	shared     *Cache
	sharedOnce sync.Once
)

// GetCache returns the process-wide shared cache instance.
func GetCache() *Cache {
	sharedOnce.Do(func() {
		shared = New()
	})

	return shared
}
