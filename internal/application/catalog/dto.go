package catalog

import (
	"time"

	"github.com/anascb/storefront/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListRequest carries the storefront listing parameters
type ListRequest struct {
	Category string `form:"categorie"`
	Search   string `form:"recherche"`
	PriceMin string `form:"prix_min"`
	PriceMax string `form:"prix_max"`
	Sort     string `form:"tri"`
}

// CreateProductRequest is the admin payload for a new product
type CreateProductRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Slug        string                 `json:"slug" binding:"required"`
	Description string                 `json:"description"`
	Price       decimal.Decimal        `json:"price" binding:"required"`
	CategoryID  *uuid.UUID             `json:"category_id"`
	Images      []string               `json:"images"`
	Variants    []CreateVariantRequest `json:"variants"`
}

// CreateVariantRequest is one size/color line of a new product
type CreateVariantRequest struct {
	Size      string `json:"size" binding:"required"`
	ColorName string `json:"color_name" binding:"required"`
	ColorHex  string `json:"color_hex"`
	Stock     int    `json:"stock"`
}

// UpdateProductRequest is the admin payload for product edits.
// Nil fields are left untouched.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	Images      []string         `json:"images"`
	Active      *bool            `json:"active"`
}

// SetStockRequest replaces one variant's stock count
type SetStockRequest struct {
	Stock int `json:"stock" binding:"min=0"`
}

// CreateCategoryRequest is the admin payload for a new category
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Position int    `json:"position"`
}

// VariantResponse is one variant as returned to clients
type VariantResponse struct {
	ID        uuid.UUID `json:"id"`
	Size      string    `json:"size"`
	ColorName string    `json:"color_name"`
	ColorHex  string    `json:"color_hex,omitempty"`
	Stock     int       `json:"stock"`
	InStock   bool      `json:"in_stock"`
}

// ProductResponse is a full product as returned to clients
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	Display     string            `json:"display_price"`
	CategoryID  *uuid.UUID        `json:"category_id,omitempty"`
	Images      []string          `json:"images"`
	Active      bool              `json:"active"`
	TotalStock  int               `json:"total_stock"`
	Variants    []VariantResponse `json:"variants"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CategoryResponse is a category as returned to clients
type CategoryResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Position int       `json:"position"`
}

// ToProductResponse converts a product to its response shape
func ToProductResponse(p *catalog.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Display:     p.PriceMoney().Display(),
		CategoryID:  p.CategoryID,
		Images:      append([]string(nil), p.Images...),
		Active:      p.Active,
		TotalStock:  p.TotalStock(),
		Variants:    make([]VariantResponse, 0, len(p.Variants)),
		CreatedAt:   p.CreatedAt,
	}
	for _, v := range p.Variants {
		resp.Variants = append(resp.Variants, VariantResponse{
			ID:        v.ID,
			Size:      v.Size.String(),
			ColorName: v.ColorName,
			ColorHex:  v.ColorHex,
			Stock:     v.Stock,
			InStock:   v.Stock > 0,
		})
	}
	return resp
}

// ToCategoryResponse converts a category to its response shape
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		Position: c.Position,
	}
}
