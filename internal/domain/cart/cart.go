package cart

import (
	"strings"

	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one line in a client cart. Everything besides the quantity is
// a denormalized snapshot taken when the product was added; the stock
// snapshot is advisory only and is re-checked against the catalog at
// checkout.
type Item struct {
	ProductID     uuid.UUID       `json:"product_id"`
	VariantID     uuid.UUID       `json:"variant_id"`
	ProductName   string          `json:"product_name"`
	Slug          string          `json:"slug"`
	Image         string          `json:"image"`
	Size          string          `json:"size"`
	ColorName     string          `json:"color_name"`
	ColorHex      string          `json:"color_hex,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	StockSnapshot int             `json:"stock_snapshot"`
}

// Validate checks the line's own invariants
func (i Item) Validate() error {
	if i.ProductID == uuid.Nil || i.VariantID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Cart item is missing product or variant ID")
	}
	if strings.TrimSpace(i.ProductName) == "" {
		return shared.NewDomainError("INVALID_ITEM", "Cart item is missing a product name")
	}
	if i.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_ITEM", "Cart item price cannot be negative")
	}
	if i.Quantity < 1 {
		return shared.NewDomainError("INVALID_ITEM", "Cart item quantity must be at least 1")
	}
	if i.Quantity > i.StockSnapshot {
		return shared.NewDomainError("INVALID_ITEM", "Cart item quantity exceeds the stock snapshot")
	}
	return nil
}

// LineSubtotal returns unit price times quantity
func (i Item) LineSubtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is a pure state container for the client-held cart. It does no
// I/O; the client serializes it to local storage between page loads.
type Cart struct {
	Items []Item `json:"items"`
}

// New returns an empty cart
func New() *Cart {
	return &Cart{Items: make([]Item, 0)}
}

// Add merges an item into the cart. Adding a variant already present
// increases its quantity instead of duplicating the line; quantities
// are clamped to the line's stock snapshot.
func (c *Cart) Add(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	for idx := range c.Items {
		if c.Items[idx].VariantID == item.VariantID {
			merged := c.Items[idx].Quantity + item.Quantity
			if merged > c.Items[idx].StockSnapshot {
				merged = c.Items[idx].StockSnapshot
			}
			c.Items[idx].Quantity = merged
			return nil
		}
	}

	c.Items = append(c.Items, item)
	return nil
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or
// less removes the line; anything above the stock snapshot is clamped.
func (c *Cart) UpdateQuantity(variantID uuid.UUID, quantity int) error {
	for idx := range c.Items {
		if c.Items[idx].VariantID != variantID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return nil
		}
		if quantity > c.Items[idx].StockSnapshot {
			quantity = c.Items[idx].StockSnapshot
		}
		c.Items[idx].Quantity = quantity
		return nil
	}
	return shared.ErrNotFound
}

// Remove deletes a line by variant ID
func (c *Cart) Remove(variantID uuid.UUID) {
	for idx := range c.Items {
		if c.Items[idx].VariantID == variantID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems returns the sum of all quantities
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the sum of all line subtotals
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineSubtotal())
	}
	return total
}
