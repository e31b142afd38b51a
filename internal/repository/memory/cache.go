package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// sweepInterval bounds how often Set walks the map for expired entries.
const sweepInterval = time.Minute

type entry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Cache is an in-process stand-in for the Redis cache, used when Redis
// is unavailable and by the terminal client.
type Cache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	lastSweep time.Time
	now       func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	now := c.now()
	e := entry{value: fmt.Sprint(value)}
	if expiration > 0 {
		e.expiresAt = now.Add(expiration)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if now.Sub(c.lastSweep) >= sweepInterval {
		c.sweepLocked(now)
	}
	c.entries[key] = e
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", ErrMiss
	}
	now := c.now()
	if e.expired(now) {
		c.mu.Lock()
		// the key may have been set again since the read lock was dropped
		if cur, ok := c.entries[key]; ok && cur.expired(now) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return "", ErrMiss
	}
	return e.value, nil
}

// sweepLocked drops every expired entry. Caller holds c.mu.
func (c *Cache) sweepLocked(now time.Time) {
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
		}
	}
	c.lastSweep = now
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
