package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anascb/storefront/internal/domain/cart"
	"github.com/anascb/storefront/internal/domain/catalog"
	"github.com/anascb/storefront/internal/domain/order"
	"github.com/anascb/storefront/internal/domain/promo"
	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/anascb/storefront/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// orderNumberAttempts bounds the retry loop on order number collisions
const orderNumberAttempts = 5

// ConfirmationSender dispatches the order confirmation to the customer.
// Failures are tolerated: the order is already committed and is not the
// notification's to roll back.
type ConfirmationSender interface {
	SendOrderConfirmation(ctx context.Context, o *order.Order) error
}

// PlaceOrderInput carries everything a checkout submission provides
type PlaceOrderInput struct {
	Form      Form // must have passed the Validator
	Items     []cart.Item
	Breakdown order.Breakdown
	UserID    *uuid.UUID
}

// PlacementResult identifies the created order
type PlacementResult struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
}

// PlacementService orchestrates stock verification, order persistence
// and confirmation dispatch for a checkout submission.
type PlacementService struct {
	orders      order.Repository
	variants    catalog.VariantRepository
	promoCodes  promo.Repository
	sender      ConfirmationSender
	shippingFee decimal.Decimal
	logger      *zap.Logger
}

// NewPlacementService creates a new PlacementService
func NewPlacementService(
	orders order.Repository,
	variants catalog.VariantRepository,
	promoCodes promo.Repository,
	sender ConfirmationSender,
	shippingFee decimal.Decimal,
	logger *zap.Logger,
) *PlacementService {
	return &PlacementService{
		orders:      orders,
		variants:    variants,
		promoCodes:  promoCodes,
		sender:      sender,
		shippingFee: shippingFee,
		logger:      logger,
	}
}

// PlaceOrder runs the placement sequence:
//
//  1. advisory stock pass (fast-fail, no writes)
//  2. order + items + initial history persisted in one transaction
//  3. per-line atomic stock decrement (the real overselling guard)
//  4. confirmation email, fire-and-forget
//
// Only a stock shortfall (before any write) or the order insert failing
// abort the placement. A decrement or email failure after the order is
// committed is logged and tolerated.
func (s *PlacementService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlacementResult, error) {
	if len(input.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot place an order with an empty cart")
	}
	for _, item := range input.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	breakdown, promoCode := s.settleBreakdown(ctx, input)

	// Advisory pass: abort before any write when a line is already
	// oversold. The decrement below remains the enforcement point.
	for _, item := range input.Items {
		stock, err := s.variants.GetStock(ctx, item.VariantID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, insufficientStock(item.ProductName)
			}
			return nil, err
		}
		if stock < item.Quantity {
			return nil, insufficientStock(item.ProductName)
		}
	}

	o, err := s.buildOrder(ctx, input, breakdown, promoCode)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, o); err != nil {
		s.logger.Error("order creation failed",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err))
		return nil, shared.ErrPersistenceFailed
	}

	// The conditional decrement serializes concurrent checkouts on the
	// same variant; stock can never go negative. A failure here is not
	// rolled back - the order stands and the shortfall is reconciled
	// manually (monitored condition).
	for _, item := range input.Items {
		if err := s.variants.DecrementStock(ctx, item.VariantID, item.Quantity); err != nil {
			s.logger.Warn("stock decrement failed after order creation",
				zap.String("order_number", o.OrderNumber),
				zap.String("variant_id", item.VariantID.String()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
		}
	}

	if err := s.sender.SendOrderConfirmation(ctx, o); err != nil {
		s.logger.Warn("order confirmation email failed",
			zap.String("order_number", o.OrderNumber),
			zap.String("email", o.CustomerEmail),
			zap.Error(err))
	}

	s.logger.Info("order placed",
		zap.String("order_number", o.OrderNumber),
		zap.String("city", o.City),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("items", o.ItemCount()))

	return &PlacementResult{OrderID: o.ID, OrderNumber: o.OrderNumber}, nil
}

// settleBreakdown recomputes the monetary breakdown server-side from
// the cart lines and promo rules. The client-supplied breakdown is only
// trusted as far as it matches; on mismatch the recomputed values win
// and the discrepancy is logged.
func (s *PlacementService) settleBreakdown(ctx context.Context, input PlaceOrderInput) (order.Breakdown, string) {
	subtotal := decimal.Zero
	for _, item := range input.Items {
		subtotal = subtotal.Add(item.LineSubtotal())
	}

	discount := decimal.Zero
	promoCode := ""
	if input.Form.PromoCode != "" {
		code, err := s.promoCodes.FindByCode(ctx, input.Form.PromoCode)
		if err == nil {
			err = code.Check(time.Now())
		}
		if err != nil {
			s.logger.Warn("promo code rejected at placement",
				zap.String("code", input.Form.PromoCode),
				zap.Error(err))
		} else {
			discount = code.DiscountFor(subtotal)
			promoCode = code.Code
		}
	}

	settled := order.Breakdown{
		Subtotal:    subtotal,
		ShippingFee: s.shippingFee,
		Discount:    discount,
		Total:       subtotal.Sub(discount).Add(s.shippingFee),
	}

	supplied := input.Breakdown
	if !supplied.Subtotal.Equal(settled.Subtotal) ||
		!supplied.Discount.Equal(settled.Discount) ||
		!supplied.ShippingFee.Equal(settled.ShippingFee) ||
		!supplied.Total.Equal(settled.Total) {
		s.logger.Warn("client breakdown mismatch, using recomputed amounts",
			zap.String("client_total", supplied.Total.StringFixed(2)),
			zap.String("settled_total", settled.Total.StringFixed(2)))
	}

	return settled, promoCode
}

// buildOrder assembles the order aggregate with a fresh unique number
func (s *PlacementService) buildOrder(ctx context.Context, input PlaceOrderInput, breakdown order.Breakdown, promoCode string) (*order.Order, error) {
	orderNumber, err := s.uniqueOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	customer := order.Customer{
		Name:  input.Form.FullName(),
		Email: input.Form.Email,
		Phone: input.Form.Phone,
	}
	shipping := order.ShippingAddress{
		Address:    input.Form.ShippingLine(),
		City:       input.Form.City,
		PostalCode: input.Form.PostalCode,
	}

	o, err := order.NewOrder(orderNumber, customer, shipping, breakdown, promoCode, input.UserID)
	if err != nil {
		return nil, err
	}
	if input.Form.Notes != "" {
		o.SetNotes(input.Form.Notes)
	}

	for _, item := range input.Items {
		if _, err := o.AddItem(
			item.ProductID,
			item.VariantID,
			item.ProductName,
			item.Size,
			item.ColorName,
			valueobject.NewMoneyMAD(item.UnitPrice),
			item.Quantity,
		); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// uniqueOrderNumber draws order numbers until one is free. The unique
// constraint on the column still backs this against races.
func (s *PlacementService) uniqueOrderNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := order.GenerateOrderNumber(time.Now())
		if err != nil {
			return "", err
		}
		exists, err := s.orders.ExistsByOrderNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", shared.NewDomainError("ORDER_NUMBER_EXHAUSTED", "Could not generate a unique order number")
}

func insufficientStock(productName string) error {
	return shared.NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("Stock insuffisant pour %s. Veuillez actualiser votre panier.", productName))
}
