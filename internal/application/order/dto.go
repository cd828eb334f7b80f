package order

import (
	"time"

	"github.com/anascb/storefront/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListFilter carries the admin listing parameters
type ListFilter struct {
	Status    string     `form:"status"`
	City      string     `form:"ville"`
	StartDate *time.Time `form:"date_debut" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"date_fin" time_format:"2006-01-02"`
	Search    string     `form:"recherche"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// UpdateStatusRequest asks for one status transition
type UpdateStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	Notes        string `json:"notes"`
	CancelReason string `json:"raison_annulation"`
}

// ItemResponse is one order line as returned to clients
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// StatusChangeResponse is one history entry as returned to clients
type StatusChangeResponse struct {
	OldStatus *string   `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Label     string    `json:"label"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Response is a full order as returned to clients
type Response struct {
	ID            uuid.UUID              `json:"id"`
	OrderNumber   string                 `json:"order_number"`
	CustomerName  string                 `json:"customer_name"`
	CustomerEmail string                 `json:"customer_email"`
	CustomerPhone string                 `json:"customer_phone"`
	Address       string                 `json:"address"`
	City          string                 `json:"city"`
	PostalCode    string                 `json:"postal_code"`
	Notes         string                 `json:"notes,omitempty"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	ShippingFee   decimal.Decimal        `json:"shipping_fee"`
	Discount      decimal.Decimal        `json:"discount"`
	Total         decimal.Decimal        `json:"total"`
	PromoCode     string                 `json:"promo_code,omitempty"`
	Status        string                 `json:"status"`
	StatusLabel   string                 `json:"status_label"`
	CancelReason  string                 `json:"cancel_reason,omitempty"`
	ConfirmedAt   *time.Time             `json:"confirmed_at,omitempty"`
	DeliveredAt   *time.Time             `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time             `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	Items         []ItemResponse         `json:"items"`
	History       []StatusChangeResponse `json:"history,omitempty"`
}

// SummaryResponse is the compact shape used by the admin listing
type SummaryResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	City         string          `json:"city"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	StatusLabel  string          `json:"status_label"`
	ItemCount    int             `json:"item_count"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StatsResponse is the admin dashboard aggregate
type StatsResponse struct {
	TotalOrders      int64            `json:"total_orders"`
	CountsByStatus   map[string]int64 `json:"counts_by_status"`
	DeliveredRevenue decimal.Decimal  `json:"delivered_revenue"`
}

// ToResponse converts an order to its full response shape
func ToResponse(o *order.Order, withHistory bool) *Response {
	resp := &Response{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		Address:       o.Address,
		City:          o.City,
		PostalCode:    o.PostalCode,
		Notes:         o.Notes,
		Subtotal:      o.Subtotal,
		ShippingFee:   o.ShippingFee,
		Discount:      o.Discount,
		Total:         o.Total,
		PromoCode:     o.PromoCode,
		Status:        o.Status.String(),
		StatusLabel:   o.Status.Label(),
		CancelReason:  o.CancelReason,
		ConfirmedAt:   o.ConfirmedAt,
		DeliveredAt:   o.DeliveredAt,
		CancelledAt:   o.CancelledAt,
		CreatedAt:     o.CreatedAt,
		Items:         make([]ItemResponse, 0, len(o.Items)),
	}

	for _, item := range o.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			Size:        item.Size,
			Color:       item.Color,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}

	if withHistory {
		resp.History = make([]StatusChangeResponse, 0, len(o.History))
		for _, change := range o.History {
			var old *string
			if change.OldStatus != nil {
				s := change.OldStatus.String()
				old = &s
			}
			resp.History = append(resp.History, StatusChangeResponse{
				OldStatus: old,
				NewStatus: change.NewStatus.String(),
				Label:     change.NewStatus.Label(),
				Notes:     change.Notes,
				CreatedAt: change.CreatedAt,
			})
		}
	}

	return resp
}

// ToSummaryResponse converts an order to its listing shape
func ToSummaryResponse(o *order.Order) SummaryResponse {
	return SummaryResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		City:         o.City,
		Total:        o.Total,
		Status:       o.Status.String(),
		StatusLabel:  o.Status.Label(),
		ItemCount:    o.ItemCount(),
		CreatedAt:    o.CreatedAt,
	}
}
