package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"storefront/internal/models/db_models"
)

type SubscriptionRepository interface {
	FindCurrent(ctx context.Context, accountID uuid.UUID, now int64) (*db_models.Subscription, error)
	ExpireEnded(ctx context.Context, now int64) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// FindCurrent returns the active subscription covering now, preferring the
// one that ends last.
func (r *subscriptionRepository) FindCurrent(ctx context.Context, accountID uuid.UUID, now int64) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Plan", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("account_id = ? AND status = ?", accountID, db_models.SubStatusActive).
		Where("starts_at <= ? AND ends_at > ?", now, now).
		Order("ends_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) ExpireEnded(ctx context.Context, now int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("status = ? AND ends_at <= ?", db_models.SubStatusActive, now).
		Updates(map[string]interface{}{"status": db_models.SubStatusExpired, "updated_at": now})
	return res.RowsAffected, res.Error
}
