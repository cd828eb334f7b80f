package cache

import (
	appcatalog "github.com/anascb/storefront/internal/application/catalog"
	"github.com/anascb/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewProductCache builds the catalog cache for the current configuration.
// When caching is disabled it returns a no-op cache; when Redis cannot be
// reached it falls back to the in-memory cache so the storefront still
// boots on a developer machine without Redis.
func NewProductCache(cfg *config.Config, logger *zap.Logger) appcatalog.ProductCache {
	if !cfg.Cache.Enabled {
		return NoopProductCache{}
	}

	redisCache, err := NewRedisProductCache(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory product cache", zap.Error(err))
		return NewInMemoryProductCache()
	}

	logger.Info("product cache backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	return redisCache
}
