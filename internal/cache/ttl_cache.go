package cache

import (
	"log/slog"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a thread-safe map whose entries expire after a fixed TTL.
// A background goroutine drops expired entries every cleanup interval.
type TTLCache[V any] struct {
	mu            sync.RWMutex
	items         map[string]entry[V]
	ttl           time.Duration
	now           func() time.Time
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	stopOnce      sync.Once
}

// NewTTLCache creates a cache with the given TTL and cleanup interval.
func NewTTLCache[V any](name string, ttl, cleanupInterval time.Duration) *TTLCache[V] {
	c := &TTLCache[V]{
		items:       make(map[string]entry[V]),
		ttl:         ttl,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	c.cleanupTicker = time.NewTicker(cleanupInterval)
	go c.cleanupLoop()

	slog.Info("TTL cache initialized",
		"cache", name,
		"ttl", ttl.String(),
		"cleanup_interval", cleanupInterval.String())

	return c
}

// Set stores value under key with the default TTL.
func (c *TTLCache[V]) Set(key string, value V) {
	c.SetUntil(key, value, c.now().Add(c.ttl))
}

// SetUntil stores value under key until the given instant.
func (c *TTLCache[V]) SetUntil(key string, value V, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[V]{value: value, expiresAt: expiresAt}
	slog.Debug("Cache entry set", "key", key, "expires_at", expiresAt.Format(time.RFC3339))
}

// Get returns the value if present and not expired.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		slog.Debug("Cache entry expired", "key", key)
		return zero, false
	}
	return e.value, true
}

// Clear removes all entries.
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.items)
	c.items = make(map[string]entry[V])
	slog.Info("Cache cleared", "removed_items", removed)
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (c *TTLCache[V]) Stop() {
	c.stopOnce.Do(func() {
		c.cleanupTicker.Stop()
		close(c.stopCleanup)
	})
}

func (c *TTLCache[V]) cleanupLoop() {
	for {
		select {
		case <-c.cleanupTicker.C:
			c.purgeExpired()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *TTLCache[V]) purgeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	expired := 0
	for key, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, key)
			expired++
		}
	}
	if expired > 0 {
		slog.Debug("Cache cleanup completed",
			"expired_entries", expired,
			"remaining_entries", len(c.items))
	}
}
