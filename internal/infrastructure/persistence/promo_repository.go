package persistence

import (
	"context"
	"errors"

	"github.com/anascb/storefront/internal/domain/promo"
	"github.com/anascb/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPromoRepository implements promo.Repository using GORM
type GormPromoRepository struct {
	db *gorm.DB
}

// NewGormPromoRepository creates a new GormPromoRepository
func NewGormPromoRepository(db *gorm.DB) *GormPromoRepository {
	return &GormPromoRepository{db: db}
}

// FindByCode finds a promo code by its normalized code
func (r *GormPromoRepository) FindByCode(ctx context.Context, code string) (*promo.PromoCode, error) {
	var found promo.PromoCode
	if err := r.db.WithContext(ctx).
		Where("code = ?", promo.Normalize(code)).
		First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &found, nil
}

// FindAll returns all promo codes, newest first
func (r *GormPromoRepository) FindAll(ctx context.Context) ([]promo.PromoCode, error) {
	var codes []promo.PromoCode
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// Save persists a promo code
func (r *GormPromoRepository) Save(ctx context.Context, code *promo.PromoCode) error {
	return r.db.WithContext(ctx).Save(code).Error
}

// Delete removes a promo code
func (r *GormPromoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&promo.PromoCode{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
