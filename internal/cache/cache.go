// Package cache provides a typed TTL cache over patrickmn/go-cache.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rpggio/activation/internal/metrics"
)

const (
	// DefaultExpiration uses the cache's configured expiration.
	DefaultExpiration = gocache.DefaultExpiration
	// NoExpiration keeps an entry until it is deleted.
	NoExpiration = gocache.NoExpiration
	// DefaultCleanupInterval is how often expired entries are purged.
	DefaultCleanupInterval = 10 * time.Minute
)

// Manager is a typed key/value cache.
type Manager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	// Add stores value only if key is absent and reports whether it did.
	Add(ctx context.Context, key K, value V, ttl time.Duration) bool
	Delete(ctx context.Context, keys ...K)
	Flush(ctx context.Context)
}

// InMemory is a [Manager] backed by an in-process go-cache instance.
type InMemory[K ~string, V any] struct {
	name  string
	cache *gocache.Cache
}

// NewInMemory returns a cache whose entries live for expiration unless set
// with an explicit TTL.
func NewInMemory[K ~string, V any](name string, expiration, cleanupInterval time.Duration) *InMemory[K, V] {
	return &InMemory[K, V]{
		name:  name,
		cache: gocache.New(expiration, cleanupInterval),
	}
}

func (c *InMemory[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V
	raw, ok := c.cache.Get(string(key))
	if !ok {
		metrics.RecordCacheLookup(c.name, false)
		return zero, false
	}
	value, ok := raw.(V)
	if !ok {
		metrics.RecordCacheLookup(c.name, false)
		return zero, false
	}
	metrics.RecordCacheLookup(c.name, true)
	return value, true
}

func (c *InMemory[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

func (c *InMemory[K, V]) Add(_ context.Context, key K, value V, ttl time.Duration) bool {
	return c.cache.Add(string(key), value, ttl) == nil
}

func (c *InMemory[K, V]) Delete(_ context.Context, keys ...K) {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
}

func (c *InMemory[K, V]) Flush(_ context.Context) {
	c.cache.Flush()
}

// Len returns the number of entries, including expired ones not yet purged.
func (c *InMemory[K, V]) Len() int {
	return c.cache.ItemCount()
}
