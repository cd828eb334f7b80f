package order

import (
	"context"
	"time"

	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter narrows an order listing. The admin view uses the full set;
// the account page sets only UserID.
type Filter struct {
	Status    *OrderStatus
	UserID    *uuid.UUID
	City      string
	StartDate *time.Time
	EndDate   *time.Time
	Search    string // matches order number, customer name, or phone
	Page      int
	PageSize  int
}

// Repository defines persistence operations for orders.
//
// Create must persist the order together with its items and initial
// history entry atomically: either the whole order exists or none of
// it does. Save persists status updates and appends any new history
// entries in the same transaction.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, filter Filter) ([]Order, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)
	SumDeliveredRevenue(ctx context.Context) (decimal.Decimal, error)
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
}

// Ensure Filter defaults don't produce unbounded queries
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 || f.PageSize > 100 {
		f.PageSize = shared.DefaultFilter().PageSize
	}
}
