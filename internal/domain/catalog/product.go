package catalog

import (
	"strings"
	"time"

	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/anascb/storefront/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Size represents an apparel size
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// IsValid checks if the size is a known apparel size
func (s Size) IsValid() bool {
	switch s {
	case SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return true
	}
	return false
}

// String returns the string representation of the size
func (s Size) String() string {
	return string(s)
}

// ProductVariant represents a size/color combination of a product,
// each with its own stock count. Stock is the single source of truth
// for availability.
type ProductVariant struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Size      Size      `gorm:"type:varchar(5);not null"`
	ColorName string    `gorm:"type:varchar(50);not null"`
	ColorHex  string    `gorm:"type:varchar(7)"`
	SKU       string    `gorm:"type:varchar(50)"`
	Stock     int       `gorm:"not null;default:0;check:stock >= 0"`
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// NewProductVariant creates a new product variant
func NewProductVariant(productID uuid.UUID, size Size, colorName, colorHex string, stock int) (*ProductVariant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !size.IsValid() {
		return nil, shared.NewDomainError("INVALID_SIZE", "Unknown size: "+string(size))
	}
	if strings.TrimSpace(colorName) == "" {
		return nil, shared.NewDomainError("INVALID_COLOR", "Color name cannot be empty")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &ProductVariant{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Size:       size,
		ColorName:  colorName,
		ColorHex:   colorHex,
		Stock:      stock,
	}, nil
}

// InStock returns true if at least the requested quantity is available
func (v *ProductVariant) InStock(quantity int) bool {
	return quantity > 0 && v.Stock >= quantity
}

// SetStock replaces the stock count (admin restock)
func (v *ProductVariant) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	v.Stock = stock
	v.UpdatedAt = time.Now()
	return nil
}

// Product represents a catalog product, the aggregate root owning its variants
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Slug        string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	Images      pq.StringArray  `gorm:"type:text[]"`
	Active      bool            `gorm:"not null;default:true"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, slug string, price valueobject.Money, categoryID *uuid.UUID) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if strings.TrimSpace(slug) == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Product slug cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              strings.ToLower(slug),
		Price:             price.Amount(),
		CategoryID:        categoryID,
		Active:            true,
		Variants:          make([]ProductVariant, 0),
	}, nil
}

// AddVariant adds a size/color variant to the product
func (p *Product) AddVariant(size Size, colorName, colorHex string, stock int) (*ProductVariant, error) {
	for _, v := range p.Variants {
		if v.Size == size && strings.EqualFold(v.ColorName, colorName) {
			return nil, shared.NewDomainError("DUPLICATE_VARIANT", "A variant with this size and color already exists")
		}
	}

	variant, err := NewProductVariant(p.ID, size, colorName, colorHex, stock)
	if err != nil {
		return nil, err
	}

	p.Variants = append(p.Variants, *variant)
	p.UpdatedAt = time.Now()
	return variant, nil
}

// UpdatePrice changes the product price
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// Activate puts the product back in the storefront
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}

// Deactivate hides the product from the storefront without deleting it
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// PriceMoney returns the price as a Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyMAD(p.Price)
}

// TotalStock returns the stock summed across all variants
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// GetVariant returns a variant by its ID
func (p *Product) GetVariant(variantID uuid.UUID) *ProductVariant {
	for idx := range p.Variants {
		if p.Variants[idx].ID == variantID {
			return &p.Variants[idx]
		}
	}
	return nil
}
