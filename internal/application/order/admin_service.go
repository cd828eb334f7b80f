package order

import (
	"context"

	"github.com/anascb/storefront/internal/domain/catalog"
	"github.com/anascb/storefront/internal/domain/order"
	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService exposes the back-office order operations: tracking lookup,
// filtered listing, status transitions and dashboard stats.
type AdminService struct {
	orders   order.Repository
	variants catalog.VariantRepository
	logger   *zap.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(orders order.Repository, variants catalog.VariantRepository, logger *zap.Logger) *AdminService {
	return &AdminService{
		orders:   orders,
		variants: variants,
		logger:   logger,
	}
}

// GetByNumber returns one order with its full history. It backs both
// the public tracking page and the admin detail view.
func (s *AdminService) GetByNumber(ctx context.Context, orderNumber string) (*Response, error) {
	o, err := s.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return ToResponse(o, true), nil
}

// GetByID returns one order with its full history for the admin detail view
func (s *AdminService) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToResponse(o, true), nil
}

// List returns a page of order summaries matching the admin filters
func (s *AdminService) List(ctx context.Context, req ListFilter) (*shared.Paginated[SummaryResponse], error) {
	filter := order.Filter{
		City:      req.City,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Search:    req.Search,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}
	if req.Status != "" {
		status := order.OrderStatus(req.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+req.Status)
		}
		filter.Status = &status
	}
	return s.listPage(ctx, filter)
}

// ListForUser returns a page of the given customer's own orders for the
// account page.
func (s *AdminService) ListForUser(ctx context.Context, userID uuid.UUID, page, pageSize int) (*shared.Paginated[SummaryResponse], error) {
	return s.listPage(ctx, order.Filter{
		UserID:   &userID,
		Page:     page,
		PageSize: pageSize,
	})
}

func (s *AdminService) listPage(ctx context.Context, filter order.Filter) (*shared.Paginated[SummaryResponse], error) {
	filter.Normalize()

	found, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]SummaryResponse, 0, len(found))
	for i := range found {
		summaries = append(summaries, ToSummaryResponse(&found[i]))
	}

	page := shared.NewPaginated(summaries, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdateStatus applies one status transition. Cancelling an order
// returns its items to stock; a restock failure is logged but does not
// undo the cancellation.
func (s *AdminService) UpdateStatus(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req UpdateStatusRequest) (*Response, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := order.OrderStatus(req.Status)
	if err := o.TransitionTo(target, &actorID, req.Notes, req.CancelReason); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		s.logger.Error("order status update failed",
			zap.String("order_number", o.OrderNumber),
			zap.String("target", req.Status),
			zap.Error(err))
		return nil, shared.ErrPersistenceFailed
	}

	if target == order.StatusCancelled {
		s.restock(ctx, o)
	}

	s.logger.Info("order status updated",
		zap.String("order_number", o.OrderNumber),
		zap.String("status", o.Status.String()),
		zap.String("actor_id", actorID.String()))

	return ToResponse(o, true), nil
}

// restock returns the cancelled order's quantities to their variants
func (s *AdminService) restock(ctx context.Context, o *order.Order) {
	for _, item := range o.Items {
		if err := s.variants.IncrementStock(ctx, item.VariantID, item.Quantity); err != nil {
			s.logger.Warn("restock failed for cancelled order",
				zap.String("order_number", o.OrderNumber),
				zap.String("variant_id", item.VariantID.String()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
		}
	}
}

// Stats aggregates the dashboard numbers
func (s *AdminService) Stats(ctx context.Context) (*StatsResponse, error) {
	stats := &StatsResponse{CountsByStatus: make(map[string]int64, len(order.AllStatuses))}

	var total int64
	for _, status := range order.AllStatuses {
		count, err := s.orders.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats.CountsByStatus[status.String()] = count
		total += count
	}
	stats.TotalOrders = total

	revenue, err := s.orders.SumDeliveredRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.DeliveredRevenue = revenue

	return stats, nil
}
