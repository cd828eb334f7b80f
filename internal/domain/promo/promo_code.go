package promo

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// codePattern mirrors the admin-facing rule: uppercase letters, digits,
// dashes and underscores, 3 to 50 characters
var codePattern = regexp.MustCompile(`^[A-Z0-9-_]{3,50}$`)

// Errors surfaced when verifying a code against a cart
var (
	ErrCodeInactive = shared.NewDomainError("PROMO_INACTIVE", "Ce code promo n'est plus actif")
	ErrCodeExpired  = shared.NewDomainError("PROMO_EXPIRED", "Ce code promo a expiré")
)

// PromoCode is a flat-percentage discount code. It is deliberately a
// stub: no usage counting, no per-customer limits.
type PromoCode struct {
	shared.BaseEntity
	Code     string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Percent  int       `gorm:"not null"`
	StartsAt time.Time `gorm:"not null"`
	EndsAt   time.Time `gorm:"not null"`
	Active   bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PromoCode) TableName() string {
	return "promo_codes"
}

// Normalize uppercases and trims a raw code the way the checkout form does
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// NewPromoCode creates a new promo code
func NewPromoCode(code string, percent int, startsAt, endsAt time.Time) (*PromoCode, error) {
	code = Normalize(code)
	if !codePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_CODE", "Promo code must be 3-50 uppercase letters, digits, dashes or underscores")
	}
	if percent < 1 || percent > 100 {
		return nil, shared.NewDomainError("INVALID_PERCENT", "Discount percentage must be between 1 and 100")
	}
	if !endsAt.After(startsAt) {
		return nil, shared.NewDomainError("INVALID_DATES", "End date must be after start date")
	}

	return &PromoCode{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Percent:    percent,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Active:     true,
	}, nil
}

// Check returns nil when the code can be applied at the given time
func (p *PromoCode) Check(now time.Time) error {
	if !p.Active {
		return ErrCodeInactive
	}
	if now.Before(p.StartsAt) || now.After(p.EndsAt) {
		return ErrCodeExpired
	}
	return nil
}

// DiscountFor computes the flat-percentage discount on a subtotal
func (p *PromoCode) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(decimal.NewFromInt(int64(p.Percent))).Div(decimal.NewFromInt(100)).Round(2)
}

// Deactivate turns the code off without deleting it
func (p *PromoCode) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Repository defines persistence operations for promo codes
type Repository interface {
	FindByCode(ctx context.Context, code string) (*PromoCode, error)
	FindAll(ctx context.Context) ([]PromoCode, error)
	Save(ctx context.Context, code *PromoCode) error
	Delete(ctx context.Context, id uuid.UUID) error
}
