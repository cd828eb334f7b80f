package promo

import (
	"context"
	"time"

	"github.com/anascb/storefront/internal/domain/promo"
	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// VerifyRequest asks whether a code applies to a cart subtotal
type VerifyRequest struct {
	Code     string          `json:"code" binding:"required"`
	Subtotal decimal.Decimal `json:"subtotal" binding:"required"`
}

// VerifyResponse reports the discount a valid code yields
type VerifyResponse struct {
	Code     string          `json:"code"`
	Percent  int             `json:"percent"`
	Discount decimal.Decimal `json:"discount"`
}

// CreateRequest is the admin payload for a new code
type CreateRequest struct {
	Code     string    `json:"code" binding:"required"`
	Percent  int       `json:"percent" binding:"required"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}

// CodeResponse is a promo code as returned to the admin
type CodeResponse struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"code"`
	Percent  int       `json:"percent"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Active   bool      `json:"active"`
}

// Service verifies promo codes for the checkout page and manages them
// for the back office.
type Service struct {
	codes  promo.Repository
	logger *zap.Logger
}

// NewService creates a new promo Service
func NewService(codes promo.Repository, logger *zap.Logger) *Service {
	return &Service{codes: codes, logger: logger}
}

// Verify checks a code against the current time and returns the
// discount it would apply to the given subtotal. An unknown code is
// reported the same way as an inactive one.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	if req.Subtotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Subtotal cannot be negative")
	}

	normalized := promo.Normalize(req.Code)
	code, err := s.codes.FindByCode(ctx, normalized)
	if err != nil {
		return nil, promo.ErrCodeInactive
	}
	if err := code.Check(time.Now()); err != nil {
		return nil, err
	}

	return &VerifyResponse{
		Code:     code.Code,
		Percent:  code.Percent,
		Discount: code.DiscountFor(req.Subtotal),
	}, nil
}

// Create adds a promo code (admin)
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CodeResponse, error) {
	normalized := promo.Normalize(req.Code)
	if _, err := s.codes.FindByCode(ctx, normalized); err == nil {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A promo code with this name already exists")
	}

	code, err := promo.NewPromoCode(req.Code, req.Percent, req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}
	if err := s.codes.Save(ctx, code); err != nil {
		return nil, err
	}

	s.logger.Info("promo code created",
		zap.String("code", code.Code),
		zap.Int("percent", code.Percent))

	return toCodeResponse(code), nil
}

// List returns all promo codes (admin)
func (s *Service) List(ctx context.Context) ([]CodeResponse, error) {
	found, err := s.codes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CodeResponse, 0, len(found))
	for i := range found {
		responses = append(responses, *toCodeResponse(&found[i]))
	}
	return responses, nil
}

// Deactivate turns a code off (admin)
func (s *Service) Deactivate(ctx context.Context, code string) (*CodeResponse, error) {
	found, err := s.codes.FindByCode(ctx, promo.Normalize(code))
	if err != nil {
		return nil, err
	}
	found.Deactivate()
	if err := s.codes.Save(ctx, found); err != nil {
		return nil, err
	}
	return toCodeResponse(found), nil
}

func toCodeResponse(c *promo.PromoCode) *CodeResponse {
	return &CodeResponse{
		ID:       c.ID,
		Code:     c.Code,
		Percent:  c.Percent,
		StartsAt: c.StartsAt,
		EndsAt:   c.EndsAt,
		Active:   c.Active,
	}
}
