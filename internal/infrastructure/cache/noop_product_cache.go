package cache

import (
	"context"
	"time"

	appcatalog "github.com/anascb/storefront/internal/application/catalog"
)

// NoopProductCache disables caching. Every lookup is a miss and writes
// are discarded.
type NoopProductCache struct{}

func (NoopProductCache) GetProduct(context.Context, string) (*appcatalog.ProductResponse, bool) {
	return nil, false
}

func (NoopProductCache) SetProduct(context.Context, string, *appcatalog.ProductResponse, time.Duration) {
}

func (NoopProductCache) InvalidateProduct(context.Context, string) {}

func (NoopProductCache) GetListing(context.Context, string) ([]appcatalog.ProductResponse, bool) {
	return nil, false
}

func (NoopProductCache) SetListing(context.Context, string, []appcatalog.ProductResponse, time.Duration) {
}

func (NoopProductCache) InvalidateListings(context.Context) {}
