package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"storefront/internal/models/db_models"
)

type PaymentMethodRepository interface {
	FindById(ctx context.Context, id uuid.UUID) (*db_models.PaymentMethod, error)
	ListActive(ctx context.Context) ([]db_models.PaymentMethod, error)
	ListAll(ctx context.Context) ([]db_models.PaymentMethod, error)
	Create(ctx context.Context, method *db_models.PaymentMethod) error
	Save(ctx context.Context, method *db_models.PaymentMethod) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type paymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.PaymentMethod, error) {
	var method db_models.PaymentMethod
	err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

func (r *paymentMethodRepository) ListActive(ctx context.Context) ([]db_models.PaymentMethod, error) {
	var methods []db_models.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepository) ListAll(ctx context.Context) ([]db_models.PaymentMethod, error) {
	var methods []db_models.PaymentMethod
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *db_models.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

func (r *paymentMethodRepository) Save(ctx context.Context, method *db_models.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

// Delete is soft so existing payments keep their method name.
func (r *paymentMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&db_models.PaymentMethod{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConditionFailed
	}
	return nil
}
