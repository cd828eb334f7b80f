package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/anascb/storefront/internal/domain/catalog"
	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product with its variants by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySlug finds a product with its variants by slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("slug = ?", strings.ToLower(slug)).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds products matching the storefront filters
func (r *GormProductRepository) FindAll(ctx context.Context, filters catalog.ProductFilters, sort catalog.ProductSort) ([]catalog.Product, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).Preload("Variants")

	if filters.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filters.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filters.CategorySlug)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", pattern, pattern)
	}
	if filters.PriceMin != nil {
		query = query.Where("products.price >= ?", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		query = query.Where("products.price <= ?", *filters.PriceMax)
	}

	query = query.Order(orderClause(sort))

	var products []catalog.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindSimilar finds other active products in the same category
func (r *GormProductRepository) FindSimilar(ctx context.Context, productID, categoryID uuid.UUID, limit int) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("category_id = ? AND id <> ? AND active = ?", categoryID, productID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save persists a product and its variants
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
}

// Delete removes a product; its variants cascade at the database level
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func orderClause(sort catalog.ProductSort) string {
	switch sort {
	case catalog.SortOldest:
		return "products.created_at ASC"
	case catalog.SortPriceAsc:
		return "products.price ASC"
	case catalog.SortPriceDesc:
		return "products.price DESC"
	case catalog.SortNameAsc:
		return "products.name ASC"
	case catalog.SortNameDesc:
		return "products.name DESC"
	default:
		return "products.created_at DESC"
	}
}
