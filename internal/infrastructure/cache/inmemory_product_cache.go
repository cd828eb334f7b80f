package cache

import (
	"context"
	"sync"
	"time"

	appcatalog "github.com/anascb/storefront/internal/application/catalog"
)

type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e cacheEntry[T]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// InMemoryProductCache is a process-local catalog cache. Used in
// development and as a fallback when Redis is unreachable.
type InMemoryProductCache struct {
	products sync.Map // slug -> cacheEntry[*appcatalog.ProductResponse]
	listings sync.Map // key -> cacheEntry[[]appcatalog.ProductResponse]
	now      func() time.Time
}

// NewInMemoryProductCache creates an empty in-memory cache
func NewInMemoryProductCache() *InMemoryProductCache {
	return &InMemoryProductCache{now: time.Now}
}

// GetProduct implements catalog.ProductCache
func (c *InMemoryProductCache) GetProduct(_ context.Context, slug string) (*appcatalog.ProductResponse, bool) {
	raw, ok := c.products.Load(slug)
	if !ok {
		return nil, false
	}
	entry := raw.(cacheEntry[*appcatalog.ProductResponse])
	if entry.expired(c.now()) {
		c.products.Delete(slug)
		return nil, false
	}
	return entry.value, true
}

// SetProduct implements catalog.ProductCache
func (c *InMemoryProductCache) SetProduct(_ context.Context, slug string, product *appcatalog.ProductResponse, ttl time.Duration) {
	c.products.Store(slug, cacheEntry[*appcatalog.ProductResponse]{
		value:     product,
		expiresAt: c.now().Add(ttl),
	})
}

// InvalidateProduct implements catalog.ProductCache
func (c *InMemoryProductCache) InvalidateProduct(_ context.Context, slug string) {
	c.products.Delete(slug)
}

// GetListing implements catalog.ProductCache
func (c *InMemoryProductCache) GetListing(_ context.Context, key string) ([]appcatalog.ProductResponse, bool) {
	raw, ok := c.listings.Load(key)
	if !ok {
		return nil, false
	}
	entry := raw.(cacheEntry[[]appcatalog.ProductResponse])
	if entry.expired(c.now()) {
		c.listings.Delete(key)
		return nil, false
	}
	return entry.value, true
}

// SetListing implements catalog.ProductCache
func (c *InMemoryProductCache) SetListing(_ context.Context, key string, products []appcatalog.ProductResponse, ttl time.Duration) {
	c.listings.Store(key, cacheEntry[[]appcatalog.ProductResponse]{
		value:     products,
		expiresAt: c.now().Add(ttl),
	})
}

// InvalidateListings implements catalog.ProductCache
func (c *InMemoryProductCache) InvalidateListings(_ context.Context) {
	c.listings.Range(func(key, _ any) bool {
		c.listings.Delete(key)
		return true
	})
}
