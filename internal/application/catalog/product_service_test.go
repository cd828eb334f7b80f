package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/anascb/storefront/internal/domain/catalog"
	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/anascb/storefront/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filters catalog.ProductFilters, sort catalog.ProductSort) ([]catalog.Product, error) {
	args := m.Called(ctx, filters, sort)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindSimilar(ctx context.Context, productID, categoryID uuid.UUID, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, productID, categoryID, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVariantRepository is a mock implementation of catalog.VariantRepository
type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) GetStock(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockVariantRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockVariantRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

// noCache always misses: every read goes to the repository
type noCache struct{}

func (noCache) GetProduct(context.Context, string) (*ProductResponse, bool) { return nil, false }
func (noCache) SetProduct(context.Context, string, *ProductResponse, time.Duration) {
}
func (noCache) InvalidateProduct(context.Context, string) {}
func (noCache) GetListing(context.Context, string) ([]ProductResponse, bool) {
	return nil, false
}
func (noCache) SetListing(context.Context, string, []ProductResponse, time.Duration) {
}
func (noCache) InvalidateListings(context.Context) {}

func newServiceFixture() (*ProductService, *MockProductRepository, *MockCategoryRepository) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	variants := new(MockVariantRepository)
	service := NewProductService(products, categories, variants, noCache{}, 5*time.Minute, zap.NewNop())
	return service, products, categories
}

func createTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	categoryID := uuid.New()
	p, err := catalog.NewProduct("T-shirt Atlas", "t-shirt-atlas",
		valueobject.NewMoneyMAD(decimal.NewFromInt(249)), &categoryID)
	require.NoError(t, err)
	_, err = p.AddVariant(catalog.SizeM, "Noir", "#000000", 10)
	require.NoError(t, err)
	return p
}

func TestProductService_List_DefaultsToRecent(t *testing.T) {
	service, products, _ := newServiceFixture()
	ctx := context.Background()
	p := createTestProduct(t)

	products.On("FindAll", ctx, mock.MatchedBy(func(f catalog.ProductFilters) bool {
		return f.ActiveOnly
	}), catalog.SortRecent).Return([]catalog.Product{*p}, nil)

	result, err := service.List(ctx, ListRequest{})

	assert.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "t-shirt-atlas", result[0].Slug)
	assert.Equal(t, "249,00 DHS", result[0].Display)
	products.AssertExpectations(t)
}

func TestProductService_List_InvalidSort(t *testing.T) {
	service, _, _ := newServiceFixture()

	result, err := service.List(context.Background(), ListRequest{Sort: "cheapest"})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_SORT", domainErr.Code)
}

func TestProductService_List_InvalidPriceBound(t *testing.T) {
	service, _, _ := newServiceFixture()

	_, err := service.List(context.Background(), ListRequest{PriceMin: "abc"})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PRICE", domainErr.Code)
}

func TestProductService_GetBySlug_Success(t *testing.T) {
	service, products, _ := newServiceFixture()
	ctx := context.Background()
	p := createTestProduct(t)

	products.On("FindBySlug", ctx, "t-shirt-atlas").Return(p, nil)

	result, err := service.GetBySlug(ctx, "  T-Shirt-Atlas ")

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, p.ID, result.ID)
	require.Len(t, result.Variants, 1)
	assert.True(t, result.Variants[0].InStock)
}

func TestProductService_GetBySlug_NotFound(t *testing.T) {
	service, products, _ := newServiceFixture()
	ctx := context.Background()

	products.On("FindBySlug", ctx, "inconnu").Return(nil, shared.ErrNotFound)

	result, err := service.GetBySlug(ctx, "inconnu")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_Similar_NoCategory(t *testing.T) {
	service, products, _ := newServiceFixture()
	ctx := context.Background()

	p, err := catalog.NewProduct("Sans catégorie", "sans-categorie",
		valueobject.NewMoneyMAD(decimal.NewFromInt(100)), nil)
	require.NoError(t, err)
	products.On("FindBySlug", ctx, "sans-categorie").Return(p, nil)

	result, err := service.Similar(ctx, "sans-categorie")

	assert.NoError(t, err)
	assert.Empty(t, result)
	products.AssertNotCalled(t, "FindSimilar", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_Create_Success(t *testing.T) {
	service, products, categories := newServiceFixture()
	ctx := context.Background()
	categoryID := uuid.New()
	category, _ := catalog.NewCategory("T-shirts", "t-shirts", 1)

	req := CreateProductRequest{
		Name:       "Sweat Rif",
		Slug:       "Sweat-Rif",
		Price:      decimal.NewFromInt(399),
		CategoryID: &categoryID,
		Images:     []string{"https://cdn.example.ma/sweat-rif.jpg"},
		Variants: []CreateVariantRequest{
			{Size: "M", ColorName: "Beige", Stock: 5},
			{Size: "L", ColorName: "Beige", Stock: 3},
		},
	}

	products.On("FindBySlug", ctx, "sweat-rif").Return(nil, shared.ErrNotFound)
	categories.On("FindByID", ctx, categoryID).Return(category, nil)
	products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "sweat-rif", result.Slug)
	assert.Equal(t, 8, result.TotalStock)
	require.Len(t, result.Variants, 2)
	products.AssertExpectations(t)
}

func TestProductService_Create_DuplicateSlug(t *testing.T) {
	service, products, _ := newServiceFixture()
	ctx := context.Background()
	existing := createTestProduct(t)

	products.On("FindBySlug", ctx, "t-shirt-atlas").Return(existing, nil)

	result, err := service.Create(ctx, CreateProductRequest{
		Name:  "T-shirt Atlas",
		Slug:  "t-shirt-atlas",
		Price: decimal.NewFromInt(249),
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_SLUG", domainErr.Code)
	products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Create_DuplicateVariant(t *testing.T) {
	service, products, _ := newServiceFixture()
	ctx := context.Background()

	products.On("FindBySlug", ctx, "sweat-rif").Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, CreateProductRequest{
		Name:  "Sweat Rif",
		Slug:  "sweat-rif",
		Price: decimal.NewFromInt(399),
		Variants: []CreateVariantRequest{
			{Size: "M", ColorName: "Beige", Stock: 5},
			{Size: "M", ColorName: "beige", Stock: 2},
		},
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_VARIANT", domainErr.Code)
}

func TestProductService_Update_DeactivateAndReprice(t *testing.T) {
	service, products, _ := newServiceFixture()
	ctx := context.Background()
	p := createTestProduct(t)
	newPrice := decimal.NewFromInt(199)
	inactive := false

	products.On("FindByID", ctx, p.ID).Return(p, nil)
	products.On("Save", ctx, p).Return(nil)

	result, err := service.Update(ctx, p.ID, UpdateProductRequest{
		Price:  &newPrice,
		Active: &inactive,
	})

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Active)
	assert.True(t, result.Price.Equal(newPrice))
}

func TestProductService_SetStock_Success(t *testing.T) {
	service, products, _ := newServiceFixture()
	ctx := context.Background()
	p := createTestProduct(t)
	variantID := p.Variants[0].ID

	products.On("FindByID", ctx, p.ID).Return(p, nil)
	products.On("Save", ctx, p).Return(nil)

	result, err := service.SetStock(ctx, p.ID, variantID, SetStockRequest{Stock: 25})

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 25, result.TotalStock)
}

func TestProductService_SetStock_UnknownVariant(t *testing.T) {
	service, products, _ := newServiceFixture()
	ctx := context.Background()
	p := createTestProduct(t)

	products.On("FindByID", ctx, p.ID).Return(p, nil)

	result, err := service.SetStock(ctx, p.ID, uuid.New(), SetStockRequest{Stock: 5})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_CreateCategory_Success(t *testing.T) {
	service, _, categories := newServiceFixture()
	ctx := context.Background()

	categories.On("FindBySlug", ctx, "robes").Return(nil, shared.ErrNotFound)
	categories.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

	result, err := service.CreateCategory(ctx, CreateCategoryRequest{Name: "Robes", Slug: "Robes", Position: 2})

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "robes", result.Slug)
	categories.AssertExpectations(t)
}
