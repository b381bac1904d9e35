package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"storefront/internal/models/db_models"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*db_models.Coupon, error)
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Coupon, error)
	List(ctx context.Context) ([]db_models.Coupon, error)
	Create(ctx context.Context, coupon *db_models.Coupon) error
	Save(ctx context.Context, coupon *db_models.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

// FindByCode matches case-insensitively; codes are stored upper-case.
func (r *couponRepository) FindByCode(ctx context.Context, code string) (*db_models.Coupon, error) {
	var coupon db_models.Coupon
	err := r.db.WithContext(ctx).First(&coupon, "code = ?", strings.ToUpper(strings.TrimSpace(code))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Coupon, error) {
	var coupon db_models.Coupon
	err := r.db.WithContext(ctx).First(&coupon, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) List(ctx context.Context) ([]db_models.Coupon, error) {
	var coupons []db_models.Coupon
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&coupons).Error
	return coupons, err
}

func (r *couponRepository) Create(ctx context.Context, coupon *db_models.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

// Save writes the admin-editable columns only; usage_count is owned by redemption.
func (r *couponRepository) Save(ctx context.Context, coupon *db_models.Coupon) error {
	return r.db.WithContext(ctx).
		Model(coupon).
		Select("discount_type", "discount_value", "max_uses", "expires_at", "is_active", "updated_at").
		Updates(coupon).Error
}

// Delete removes the row permanently so the code can be reused.
func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&db_models.Coupon{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConditionFailed
	}
	return nil
}
