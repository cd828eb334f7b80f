package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSort enumerates the supported product list orderings
type ProductSort string

const (
	SortRecent    ProductSort = "recent"
	SortOldest    ProductSort = "oldest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortNameAsc   ProductSort = "name_asc"
	SortNameDesc  ProductSort = "name_desc"
)

// IsValid checks if the sort value is supported
func (s ProductSort) IsValid() bool {
	switch s {
	case SortRecent, SortOldest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return true
	}
	return false
}

// ProductFilters narrows a product listing
type ProductFilters struct {
	CategorySlug string
	Search       string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	ActiveOnly   bool
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindAll(ctx context.Context, filters ProductFilters, sort ProductSort) ([]Product, error)
	FindSimilar(ctx context.Context, productID, categoryID uuid.UUID, limit int) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VariantRepository defines persistence operations for product variants.
// DecrementStock is the enforcement point against overselling: it must be
// a single conditional UPDATE that only succeeds when enough stock remains.
type VariantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductVariant, error)
	GetStock(ctx context.Context, id uuid.UUID) (int, error)
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
