package cache

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultTTL is the default time-to-live for cache items.
	DefaultTTL = 5 * time.Minute
	// DefaultCleanupInterval is the default interval for removing expired items.
	DefaultCleanupInterval = 10 * time.Minute
)

// Store is the behavior consumers depend on. K is the key type, V the value.
type Store[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, key K)
	Count() int
	Clear(ctx context.Context)
}

type item[V any] struct {
	value     V
	expiresAt time.Time
	permanent bool
}

// Cache is a thread-safe generic cache with expiration and background
// cleanup.
type Cache[K comparable, V any] struct {
	mu              sync.RWMutex
	items           map[K]item[V]
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// Option is a functional option for configuring the cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithDefaultTTL sets the default time-to-live for cache items.
func WithDefaultTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.defaultTTL = ttl
	}
}

// WithCleanupInterval sets the interval for cleaning up expired items.
func WithCleanupInterval[K comparable, V any](interval time.Duration) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.cleanupInterval = interval
	}
}

// New creates a new cache with the given options.
func New[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		items:           make(map[K]item[V]),
		defaultTTL:      DefaultTTL,
		cleanupInterval: DefaultCleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupLoop()

	return c
}

// Set adds an item, overwriting any existing one. A ttl of 0 uses the default
// TTL; -1 means the item never expires.
func (c *Cache[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	permanent := false

	switch ttl {
	case -1:
		permanent = true
	case 0:
		expiresAt = time.Now().Add(c.defaultTTL)
	default:
		expiresAt = time.Now().Add(ttl)
	}

	c.items[key] = item[V]{
		value:     value,
		expiresAt: expiresAt,
		permanent: permanent,
	}
}

// Get returns the value and true if present and not expired.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, found := c.items[key]
	if !found {
		var zero V
		return zero, false
	}

	if !cached.permanent && time.Now().After(cached.expiresAt) {
		// Expired entries are left for the cleanup goroutine to avoid a lock
		// upgrade here.
		var zero V
		return zero, false
	}

	return cached.value, true
}

// Delete removes an item from the cache.
func (c *Cache[K, V]) Delete(ctx context.Context, key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Count returns the number of items in the cache, expired ones included.
func (c *Cache[K, V]) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes all items from the cache.
func (c *Cache[K, V]) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]item[V])
}

// Stop terminates the cleanup goroutine.
func (c *Cache[K, V]) Stop() {
	close(c.stopCleanup)
}

func (c *Cache[K, V]) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *Cache[K, V]) deleteExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, cached := range c.items {
		if !cached.permanent && now.After(cached.expiresAt) {
			delete(c.items, key)
		}
	}
}
