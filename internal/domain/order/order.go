package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/anascb/storefront/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinCancelReasonLength is the minimum length of a cancellation reason
const MinCancelReasonLength = 10

// Customer holds the contact information captured at checkout
type Customer struct {
	Name  string
	Email string
	Phone string
}

// ShippingAddress holds the delivery address captured at checkout
type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
}

// Breakdown holds the monetary breakdown of an order.
// Total must equal Subtotal - Discount + ShippingFee.
type Breakdown struct {
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// Validate checks the breakdown for negative components and consistency
func (b Breakdown) Validate() error {
	if b.Subtotal.IsNegative() || b.ShippingFee.IsNegative() || b.Discount.IsNegative() || b.Total.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Order amounts cannot be negative")
	}
	expected := b.Subtotal.Sub(b.Discount).Add(b.ShippingFee)
	if !b.Total.Equal(expected) {
		return shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Order total %s does not match subtotal - discount + shipping = %s",
				b.Total.StringFixed(2), expected.StringFixed(2)))
	}
	return nil
}

// OrderItem is an immutable snapshot of a purchased product line.
// It is decoupled from the live catalog so that later edits never
// alter historical orders.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	VariantID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Size        string          `gorm:"type:varchar(5);not null"`
	Color       string          `gorm:"type:varchar(50);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// UnitPriceMoney returns the unit price as Money
func (i *OrderItem) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyMAD(i.UnitPrice)
}

// SubtotalMoney returns the line subtotal as Money
func (i *OrderItem) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyMAD(i.Subtotal)
}

// StatusChange is an append-only record of one status transition.
// OldStatus is nil only for the entry seeded at order creation.
type StatusChange struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	OldStatus *OrderStatus `gorm:"type:varchar(20)"`
	NewStatus OrderStatus  `gorm:"type:varchar(20);not null"`
	ActorID   *uuid.UUID   `gorm:"type:uuid"`
	Notes     string       `gorm:"type:varchar(500)"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (StatusChange) TableName() string {
	return "order_status_history"
}

// Order is the aggregate root for a customer order. It is created once
// per checkout submission in the pending status and mutated only by
// explicit status transitions thereafter; cancellation is a status,
// never a deletion.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	UserID        *uuid.UUID      `gorm:"type:uuid;index"` // nil for guest checkout
	CustomerName  string          `gorm:"type:varchar(200);not null"`
	CustomerEmail string          `gorm:"type:varchar(255);not null"`
	CustomerPhone string          `gorm:"type:varchar(20);not null"`
	Address       string          `gorm:"type:varchar(1000);not null"`
	City          string          `gorm:"type:varchar(100);not null"`
	PostalCode    string          `gorm:"type:varchar(5);not null"`
	Notes         string          `gorm:"type:varchar(500)"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ShippingFee   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PromoCode     string          `gorm:"type:varchar(50)"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'en_attente'"`
	CancelReason  string          `gorm:"type:varchar(500)"`
	ConfirmedAt   *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
	Items         []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History       []StatusChange `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new pending order and seeds its first status
// history entry. The breakdown must already be consistent.
func NewOrder(orderNumber string, customer Customer, shipping ShippingAddress, breakdown Breakdown, promoCode string, userID *uuid.UUID) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if strings.TrimSpace(customer.Name) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if strings.TrimSpace(customer.Email) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer email cannot be empty")
	}
	if err := breakdown.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            userID,
		CustomerName:      customer.Name,
		CustomerEmail:     strings.ToLower(customer.Email),
		CustomerPhone:     customer.Phone,
		Address:           shipping.Address,
		City:              shipping.City,
		PostalCode:        shipping.PostalCode,
		Subtotal:          breakdown.Subtotal,
		ShippingFee:       breakdown.ShippingFee,
		Discount:          breakdown.Discount,
		Total:             breakdown.Total,
		PromoCode:         promoCode,
		Status:            StatusPending,
		Items:             make([]OrderItem, 0),
	}

	o.History = []StatusChange{{
		ID:        uuid.New(),
		OrderID:   o.ID,
		OldStatus: nil,
		NewStatus: StatusPending,
		Notes:     "Commande créée",
		CreatedAt: o.CreatedAt,
	}}

	return o, nil
}

// SetNotes attaches customer notes to the order
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
}

// AddItem appends a frozen snapshot of a purchased line.
// Only allowed while the order is still pending.
func (o *Order) AddItem(productID, variantID uuid.UUID, productName, size, color string, unitPrice valueobject.Money, quantity int) (*OrderItem, error) {
	if o.Status != StatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}
	if productID == uuid.Nil || variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product and variant IDs cannot be empty")
	}
	if strings.TrimSpace(productName) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		ProductID:   productID,
		VariantID:   variantID,
		ProductName: productName,
		Size:        size,
		Color:       color,
		UnitPrice:   unitPrice.Amount(),
		Quantity:    quantity,
		Subtotal:    unitPrice.MultiplyByInt(int64(quantity)).Amount(),
	}

	o.Items = append(o.Items, item)
	return &o.Items[len(o.Items)-1], nil
}

// TransitionTo moves the order to the target status, appending exactly
// one history entry. Cancellation requires a reason of at least
// MinCancelReasonLength characters. Confirmation and delivery stamp
// their milestone timestamps.
func (o *Order) TransitionTo(target OrderStatus, actorID *uuid.UUID, notes, cancelReason string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	now := time.Now()
	if target == StatusCancelled {
		reason := strings.TrimSpace(cancelReason)
		if len(reason) < MinCancelReasonLength {
			return shared.NewDomainError("INVALID_REASON",
				fmt.Sprintf("Cancellation reason must be at least %d characters", MinCancelReasonLength))
		}
		o.CancelReason = reason
		o.CancelledAt = &now
	}

	previous := o.Status
	o.Status = target
	o.UpdatedAt = now

	switch target {
	case StatusConfirmed:
		o.ConfirmedAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	}

	o.History = append(o.History, StatusChange{
		ID:        uuid.New(),
		OrderID:   o.ID,
		OldStatus: &previous,
		NewStatus: target,
		ActorID:   actorID,
		Notes:     notes,
		CreatedAt: now,
	})

	return nil
}

// LatestStatusChange returns the most recent history entry
func (o *Order) LatestStatusChange() *StatusChange {
	if len(o.History) == 0 {
		return nil
	}
	return &o.History[len(o.History)-1]
}

// IsTerminal returns true if the order is delivered or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// ItemsSubtotal returns the sum of all line subtotals
func (o *Order) ItemsSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// TotalMoney returns the order total as Money
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyMAD(o.Total)
}
