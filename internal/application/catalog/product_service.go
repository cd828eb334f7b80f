package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/anascb/storefront/internal/domain/catalog"
	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/anascb/storefront/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// similarLimit caps the "you may also like" section
const similarLimit = 4

// ProductCache is a read-through cache in front of product lookups.
// Implementations must treat a miss and an unavailable backend the
// same way: return ok=false and let the caller hit the repository.
type ProductCache interface {
	GetProduct(ctx context.Context, slug string) (*ProductResponse, bool)
	SetProduct(ctx context.Context, slug string, product *ProductResponse, ttl time.Duration)
	InvalidateProduct(ctx context.Context, slug string)
	GetListing(ctx context.Context, key string) ([]ProductResponse, bool)
	SetListing(ctx context.Context, key string, products []ProductResponse, ttl time.Duration)
	InvalidateListings(ctx context.Context)
}

// ProductService exposes the storefront catalog reads and the admin
// catalog writes. Reads go through the cache; every write invalidates.
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	variants   catalog.VariantRepository
	cache      ProductCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	variants catalog.VariantRepository,
	cache ProductCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		variants:   variants,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// List returns the storefront product listing. Only active products are
// returned; unsorted requests default to newest first.
func (s *ProductService) List(ctx context.Context, req ListRequest) ([]ProductResponse, error) {
	sort := catalog.ProductSort(req.Sort)
	if req.Sort == "" {
		sort = catalog.SortRecent
	}
	if !sort.IsValid() {
		return nil, shared.NewDomainError("INVALID_SORT", "Unknown sort order: "+req.Sort)
	}

	filters := catalog.ProductFilters{
		CategorySlug: strings.ToLower(strings.TrimSpace(req.Category)),
		Search:       strings.TrimSpace(req.Search),
		ActiveOnly:   true,
	}
	if req.PriceMin != "" {
		min, err := decimal.NewFromString(req.PriceMin)
		if err != nil || min.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Invalid minimum price: "+req.PriceMin)
		}
		filters.PriceMin = &min
	}
	if req.PriceMax != "" {
		max, err := decimal.NewFromString(req.PriceMax)
		if err != nil || max.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Invalid maximum price: "+req.PriceMax)
		}
		filters.PriceMax = &max
	}

	key := listingKey(filters, sort)
	if cached, ok := s.cache.GetListing(ctx, key); ok {
		return cached, nil
	}

	found, err := s.products.FindAll(ctx, filters, sort)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(found))
	for i := range found {
		responses = append(responses, *ToProductResponse(&found[i]))
	}

	s.cache.SetListing(ctx, key, responses, s.cacheTTL)
	return responses, nil
}

// GetBySlug returns one product for the storefront detail page
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if cached, ok := s.cache.GetProduct(ctx, slug); ok {
		return cached, nil
	}

	p, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(p)
	s.cache.SetProduct(ctx, slug, resp, s.cacheTTL)
	return resp, nil
}

// Similar returns up to four other active products from the same category
func (s *ProductService) Similar(ctx context.Context, slug string) ([]ProductResponse, error) {
	p, err := s.products.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	if p.CategoryID == nil {
		return []ProductResponse{}, nil
	}

	found, err := s.products.FindSimilar(ctx, p.ID, *p.CategoryID, similarLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(found))
	for i := range found {
		responses = append(responses, *ToProductResponse(&found[i]))
	}
	return responses, nil
}

// Categories returns all categories ordered by position
func (s *ProductService) Categories(ctx context.Context) ([]CategoryResponse, error) {
	found, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, 0, len(found))
	for i := range found {
		responses = append(responses, ToCategoryResponse(&found[i]))
	}
	return responses, nil
}

// Create adds a product with its variants (admin)
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.products.FindBySlug(ctx, strings.ToLower(req.Slug)); err == nil {
		return nil, shared.NewDomainError("DUPLICATE_SLUG", "A product with this slug already exists")
	}
	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category does not exist")
		}
	}

	p, err := catalog.NewProduct(req.Name, req.Slug, valueobject.NewMoneyMAD(req.Price), req.CategoryID)
	if err != nil {
		return nil, err
	}
	p.Description = req.Description
	p.Images = req.Images

	for _, v := range req.Variants {
		if _, err := p.AddVariant(catalog.Size(v.Size), v.ColorName, v.ColorHex, v.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}

	s.cache.InvalidateListings(ctx)
	s.logger.Info("product created",
		zap.String("slug", p.Slug),
		zap.Int("variants", len(p.Variants)))

	return ToProductResponse(p), nil
}

// Update edits a product's mutable fields (admin)
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
		}
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if err := p.UpdatePrice(valueobject.NewMoneyMAD(*req.Price)); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category does not exist")
		}
		p.CategoryID = req.CategoryID
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.Active != nil {
		if *req.Active {
			p.Activate()
		} else {
			p.Deactivate()
		}
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx, p.Slug)
	return ToProductResponse(p), nil
}

// SetStock replaces one variant's stock count (admin restock)
func (s *ProductService) SetStock(ctx context.Context, productID, variantID uuid.UUID, req SetStockRequest) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	variant := p.GetVariant(variantID)
	if variant == nil {
		return nil, shared.ErrNotFound
	}
	if err := variant.SetStock(req.Stock); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx, p.Slug)
	s.logger.Info("variant stock set",
		zap.String("slug", p.Slug),
		zap.String("variant_id", variantID.String()),
		zap.Int("stock", req.Stock))

	return ToProductResponse(p), nil
}

// Delete removes a product (admin). Orders keep their snapshots, so
// historical data is unaffected.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, p.Slug)
	return nil
}

// CreateCategory adds a category (admin)
func (s *ProductService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if _, err := s.categories.FindBySlug(ctx, strings.ToLower(req.Slug)); err == nil {
		return nil, shared.NewDomainError("DUPLICATE_SLUG", "A category with this slug already exists")
	}

	c, err := catalog.NewCategory(req.Name, req.Slug, req.Position)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(c)
	return &resp, nil
}

func (s *ProductService) invalidate(ctx context.Context, slug string) {
	s.cache.InvalidateProduct(ctx, slug)
	s.cache.InvalidateListings(ctx)
}

// listingKey builds a stable cache key from the listing parameters
func listingKey(filters catalog.ProductFilters, sort catalog.ProductSort) string {
	var b strings.Builder
	b.WriteString("products:")
	b.WriteString(string(sort))
	b.WriteString(":cat=")
	b.WriteString(filters.CategorySlug)
	b.WriteString(":q=")
	b.WriteString(strings.ToLower(filters.Search))
	if filters.PriceMin != nil {
		b.WriteString(":min=")
		b.WriteString(filters.PriceMin.String())
	}
	if filters.PriceMax != nil {
		b.WriteString(":max=")
		b.WriteString(filters.PriceMax.String())
	}
	return b.String()
}
