package order

import (
	"context"
	"testing"
	"time"

	"github.com/anascb/storefront/internal/domain/catalog"
	"github.com/anascb/storefront/internal/domain/order"
	"github.com/anascb/storefront/internal/domain/shared/valueobject"
	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter order.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status order.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SumDeliveredRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
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

func createTestOrder(t *testing.T) *order.Order {
	t.Helper()
	number, err := order.GenerateOrderNumber(time.Now())
	require.NoError(t, err)
	o, err := order.NewOrder(number,
		order.Customer{Name: "Amina Berrada", Email: "amina@example.ma", Phone: "0612345678"},
		order.ShippingAddress{Address: "12 rue des Orangers", City: "Casablanca", PostalCode: "20000"},
		order.Breakdown{
			Subtotal:    decimal.NewFromInt(200),
			ShippingFee: decimal.NewFromInt(35),
			Discount:    decimal.Zero,
			Total:       decimal.NewFromInt(235),
		}, "", nil)
	require.NoError(t, err)
	return o
}

func TestAdminService_GetByNumber_Success(t *testing.T) {
	orders := new(MockOrderRepository)
	variants := new(MockVariantRepository)
	service := NewAdminService(orders, variants, zap.NewNop())

	ctx := context.Background()
	o := createTestOrder(t)
	orders.On("FindByOrderNumber", ctx, o.OrderNumber).Return(o, nil)

	resp, err := service.GetByNumber(ctx, o.OrderNumber)

	assert.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, o.OrderNumber, resp.OrderNumber)
	assert.Equal(t, "en_attente", resp.Status)
	assert.Equal(t, "En attente", resp.StatusLabel)
	require.Len(t, resp.History, 1)
	assert.Nil(t, resp.History[0].OldStatus)
	assert.Equal(t, "Commande créée", resp.History[0].Notes)
}

func TestAdminService_GetByNumber_NotFound(t *testing.T) {
	orders := new(MockOrderRepository)
	variants := new(MockVariantRepository)
	service := NewAdminService(orders, variants, zap.NewNop())

	ctx := context.Background()
	orders.On("FindByOrderNumber", ctx, "CMD-20260101-XXXXXX").Return(nil, shared.ErrNotFound)

	resp, err := service.GetByNumber(ctx, "CMD-20260101-XXXXXX")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAdminService_List_InvalidStatusRejected(t *testing.T) {
	orders := new(MockOrderRepository)
	variants := new(MockVariantRepository)
	service := NewAdminService(orders, variants, zap.NewNop())

	resp, err := service.List(context.Background(), ListFilter{Status: "expediee"})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	orders.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestAdminService_List_Success(t *testing.T) {
	orders := new(MockOrderRepository)
	variants := new(MockVariantRepository)
	service := NewAdminService(orders, variants, zap.NewNop())

	ctx := context.Background()
	o := createTestOrder(t)

	orders.On("FindAll", ctx, mock.MatchedBy(func(f order.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.Status != nil && *f.Status == order.StatusPending
	})).Return([]order.Order{*o}, nil)
	orders.On("Count", ctx, mock.AnythingOfType("order.Filter")).Return(int64(1), nil)

	resp, err := service.List(ctx, ListFilter{Status: "en_attente"})

	assert.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, o.OrderNumber, resp.Items[0].OrderNumber)
}

func TestAdminService_ListForUser_FiltersOnUserID(t *testing.T) {
	orders := new(MockOrderRepository)
	variants := new(MockVariantRepository)
	service := NewAdminService(orders, variants, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	o := createTestOrder(t)

	orders.On("FindAll", ctx, mock.MatchedBy(func(f order.Filter) bool {
		return f.UserID != nil && *f.UserID == userID && f.Page == 1 && f.PageSize == 20
	})).Return([]order.Order{*o}, nil)
	orders.On("Count", ctx, mock.MatchedBy(func(f order.Filter) bool {
		return f.UserID != nil && *f.UserID == userID
	})).Return(int64(1), nil)

	resp, err := service.ListForUser(ctx, userID, 0, 0)

	assert.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, o.OrderNumber, resp.Items[0].OrderNumber)
	orders.AssertExpectations(t)
}

func TestAdminService_UpdateStatus_Confirm(t *testing.T) {
	orders := new(MockOrderRepository)
	variants := new(MockVariantRepository)
	service := NewAdminService(orders, variants, zap.NewNop())

	ctx := context.Background()
	o := createTestOrder(t)
	actorID := uuid.New()

	orders.On("FindByID", ctx, o.ID).Return(o, nil)
	orders.On("Save", ctx, o).Return(nil)

	resp, err := service.UpdateStatus(ctx, o.ID, actorID, UpdateStatusRequest{Status: "confirmee"})

	assert.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "confirmee", resp.Status)
	assert.NotNil(t, resp.ConfirmedAt)
	require.Len(t, resp.History, 2)
	assert.Equal(t, "confirmee", resp.History[1].NewStatus)
	variants.AssertNotCalled(t, "IncrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_UpdateStatus_InvalidTransition(t *testing.T) {
	orders := new(MockOrderRepository)
	variants := new(MockVariantRepository)
	service := NewAdminService(orders, variants, zap.NewNop())

	ctx := context.Background()
	o := createTestOrder(t)

	orders.On("FindByID", ctx, o.ID).Return(o, nil)

	resp, err := service.UpdateStatus(ctx, o.ID, uuid.New(), UpdateStatusRequest{Status: "livree"})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAdminService_UpdateStatus_CancelRestocks(t *testing.T) {
	orders := new(MockOrderRepository)
	variants := new(MockVariantRepository)
	service := NewAdminService(orders, variants, zap.NewNop())

	ctx := context.Background()
	o := createTestOrder(t)
	variantID := uuid.New()
	_, err := o.AddItem(uuid.New(), variantID, "T-shirt Atlas", "M", "Noir",
		valueobject.NewMoneyMAD(decimal.NewFromInt(100)), 2)
	require.NoError(t, err)

	orders.On("FindByID", ctx, o.ID).Return(o, nil)
	orders.On("Save", ctx, o).Return(nil)
	variants.On("IncrementStock", ctx, variantID, 2).Return(nil)

	resp, err := service.UpdateStatus(ctx, o.ID, uuid.New(), UpdateStatusRequest{
		Status:       "annulee",
		CancelReason: "Client injoignable après trois tentatives",
	})

	assert.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "annulee", resp.Status)
	assert.NotEmpty(t, resp.CancelReason)
	variants.AssertExpectations(t)
}

func TestAdminService_UpdateStatus_CancelWithoutReason(t *testing.T) {
	orders := new(MockOrderRepository)
	variants := new(MockVariantRepository)
	service := NewAdminService(orders, variants, zap.NewNop())

	ctx := context.Background()
	o := createTestOrder(t)

	orders.On("FindByID", ctx, o.ID).Return(o, nil)

	resp, err := service.UpdateStatus(ctx, o.ID, uuid.New(), UpdateStatusRequest{
		Status:       "annulee",
		CancelReason: "trop tard",
	})

	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_REASON", domainErr.Code)
	variants.AssertNotCalled(t, "IncrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_Stats(t *testing.T) {
	orders := new(MockOrderRepository)
	variants := new(MockVariantRepository)
	service := NewAdminService(orders, variants, zap.NewNop())

	ctx := context.Background()
	counts := map[order.OrderStatus]int64{
		order.StatusPending:   3,
		order.StatusConfirmed: 2,
		order.StatusPreparing: 0,
		order.StatusShipping:  1,
		order.StatusDelivered: 10,
		order.StatusCancelled: 4,
	}
	for status, count := range counts {
		orders.On("CountByStatus", ctx, status).Return(count, nil)
	}
	orders.On("SumDeliveredRevenue", ctx).Return(decimal.NewFromInt(4850), nil)

	stats, err := service.Stats(ctx)

	assert.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, int64(20), stats.TotalOrders)
	assert.Equal(t, int64(10), stats.CountsByStatus["livree"])
	assert.True(t, stats.DeliveredRevenue.Equal(decimal.NewFromInt(4850)))
}
