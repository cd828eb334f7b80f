package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appcatalog "github.com/anascb/storefront/internal/application/catalog"
	"github.com/anascb/storefront/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productKeyPrefix = "catalog:product:"
	listingKeyPrefix = "catalog:listing:"
)

// RedisProductCache implements the catalog read-through cache on Redis.
// Any Redis failure degrades to a cache miss; the storefront must keep
// working when the cache is down.
type RedisProductCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisProductCache connects to Redis and returns a product cache
func NewRedisProductCache(cfg config.RedisConfig, logger *zap.Logger) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisProductCache{client: client, logger: logger}, nil
}

// NewRedisProductCacheWithClient wraps an existing Redis client
func NewRedisProductCacheWithClient(client *redis.Client, logger *zap.Logger) *RedisProductCache {
	return &RedisProductCache{client: client, logger: logger}
}

// GetProduct implements catalog.ProductCache
func (c *RedisProductCache) GetProduct(ctx context.Context, slug string) (*appcatalog.ProductResponse, bool) {
	payload, err := c.client.Get(ctx, productKeyPrefix+slug).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("product cache read failed", zap.String("slug", slug), zap.Error(err))
		}
		return nil, false
	}

	var product appcatalog.ProductResponse
	if err := json.Unmarshal(payload, &product); err != nil {
		c.logger.Warn("product cache entry corrupt, dropping", zap.String("slug", slug), zap.Error(err))
		c.client.Del(ctx, productKeyPrefix+slug)
		return nil, false
	}
	return &product, true
}

// SetProduct implements catalog.ProductCache
func (c *RedisProductCache) SetProduct(ctx context.Context, slug string, product *appcatalog.ProductResponse, ttl time.Duration) {
	payload, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productKeyPrefix+slug, payload, ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed", zap.String("slug", slug), zap.Error(err))
	}
}

// InvalidateProduct implements catalog.ProductCache
func (c *RedisProductCache) InvalidateProduct(ctx context.Context, slug string) {
	if err := c.client.Del(ctx, productKeyPrefix+slug).Err(); err != nil {
		c.logger.Warn("product cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}

// GetListing implements catalog.ProductCache
func (c *RedisProductCache) GetListing(ctx context.Context, key string) ([]appcatalog.ProductResponse, bool) {
	payload, err := c.client.Get(ctx, listingKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("listing cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var listing []appcatalog.ProductResponse
	if err := json.Unmarshal(payload, &listing); err != nil {
		c.client.Del(ctx, listingKeyPrefix+key)
		return nil, false
	}
	return listing, true
}

// SetListing implements catalog.ProductCache
func (c *RedisProductCache) SetListing(ctx context.Context, key string, products []appcatalog.ProductResponse, ttl time.Duration) {
	payload, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listingKeyPrefix+key, payload, ttl).Err(); err != nil {
		c.logger.Warn("listing cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateListings implements catalog.ProductCache. Listing keys are
// enumerated with SCAN so a large keyspace does not block Redis.
func (c *RedisProductCache) InvalidateListings(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, listingKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("listing cache invalidation failed", zap.Error(err))
	}
}

// Close releases the Redis connection
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}
