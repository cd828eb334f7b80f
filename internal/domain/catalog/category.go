package catalog

import (
	"strings"
	"time"

	"github.com/anascb/storefront/internal/domain/shared"
)

// Category represents a product category (t-shirts, robes, vestes, ...)
type Category struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(100);not null"`
	Slug     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Position int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, slug string, position int) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if strings.TrimSpace(slug) == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Category slug cannot be empty")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       strings.ToLower(slug),
		Position:   position,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}
