package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"storefront/internal/models/db_models"
)

type IPlanRepository interface {
	GetPlanById(ctx context.Context, planID uuid.UUID) (*db_models.Plan, error)
	GetActivePlans(ctx context.Context) ([]db_models.Plan, error)
	GetAllPlans(ctx context.Context) ([]db_models.Plan, error)
	Create(ctx context.Context, plan *db_models.Plan) error
	Save(ctx context.Context, plan *db_models.Plan) error
	Delete(ctx context.Context, planID uuid.UUID) error
	HasOrders(ctx context.Context, planID uuid.UUID) (bool, error)
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

func (p PlanRepository) GetPlanById(ctx context.Context, planID uuid.UUID) (*db_models.Plan, error) {

	var plan db_models.Plan
	err := p.db.WithContext(ctx).First(&plan, "id = ?", planID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (p PlanRepository) GetActivePlans(ctx context.Context) ([]db_models.Plan, error) {

	var plans []db_models.Plan
	err := p.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price_minor ASC").
		Order("name ASC").
		Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (p PlanRepository) GetAllPlans(ctx context.Context) ([]db_models.Plan, error) {

	var plans []db_models.Plan
	err := p.db.WithContext(ctx).Order("created_at DESC").Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (p PlanRepository) Create(ctx context.Context, plan *db_models.Plan) error {
	return p.db.WithContext(ctx).Create(plan).Error
}

func (p PlanRepository) Save(ctx context.Context, plan *db_models.Plan) error {
	return p.db.WithContext(ctx).Save(plan).Error
}

func (p PlanRepository) Delete(ctx context.Context, planID uuid.UUID) error {
	res := p.db.WithContext(ctx).Delete(&db_models.Plan{}, "id = ?", planID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (p PlanRepository) HasOrders(ctx context.Context, planID uuid.UUID) (bool, error) {
	var n int64
	err := p.db.WithContext(ctx).
		Model(&db_models.Order{}).
		Where("plan_id = ?", planID).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}
