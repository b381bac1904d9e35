package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"storefront/internal/config"
	"storefront/internal/models/db_models"
	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/utils"
)

type PlanServiceInterface interface {
	ListActivePlans(ctx context.Context) ([]response_models.PlanResponse, error)
	// GetPlan hides inactive plans unless includeInactive is set.
	GetPlan(ctx context.Context, planID uuid.UUID, includeInactive bool) (*response_models.PlanResponse, error)
	ListAllPlans(ctx context.Context) ([]response_models.PlanResponse, error)
	CreatePlan(ctx context.Context, req request_models.CreatePlanRequest) (*response_models.PlanResponse, error)
	UpdatePlan(ctx context.Context, planID uuid.UUID, req request_models.UpdatePlanRequest) (*response_models.PlanResponse, error)
	DeletePlan(ctx context.Context, planID uuid.UUID) error
	UploadPlanImage(ctx context.Context, planID uuid.UUID, data []byte) (*response_models.PlanResponse, error)
}

func NewPlanService(planRepo repositories.IPlanRepository, storage StorageService, cfg *config.Config, log *zap.Logger) PlanServiceInterface {
	return &PlanService{
		planRepo: planRepo,
		storage:  storage,
		currency: cfg.Currency,
		log:      log.Named("plans"),
	}
}

type PlanService struct {
	planRepo repositories.IPlanRepository
	storage  StorageService
	currency string
	log      *zap.Logger
}

func toPlanResponses(plans []db_models.Plan) []response_models.PlanResponse {
	out := make([]response_models.PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, toPlanResponse(&plans[i]))
	}
	return out
}

func cleanFeatures(features []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(features))
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (p *PlanService) ListActivePlans(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.GetActivePlans(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toPlanResponses(plans), nil
}

func (p *PlanService) GetPlan(ctx context.Context, planID uuid.UUID, includeInactive bool) (*response_models.PlanResponse, error) {

	plan, err := p.planRepo.GetPlanById(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if plan == nil || (!plan.IsActive && !includeInactive) {
		return nil, utils.ErrPlanNotFound
	}

	result := toPlanResponse(plan)
	return &result, nil
}

func (p *PlanService) ListAllPlans(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.GetAllPlans(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toPlanResponses(plans), nil
}

func (p *PlanService) CreatePlan(ctx context.Context, req request_models.CreatePlanRequest) (*response_models.PlanResponse, error) {
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = p.currency
	}

	plan := &db_models.Plan{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		PriceMinor:  *req.PriceMinor,
		Currency:    currency,
		Interval:    db_models.BillingPeriod(req.Interval),
		Features:    cleanFeatures(req.Features),
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive == nil || *req.IsActive,
		IsPopular:   req.IsPopular,
	}
	if plan.Name == "" || plan.PriceMinor < 0 {
		return nil, utils.ErrInvalidInput
	}

	if err := p.planRepo.Create(ctx, plan); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toPlanResponse(plan)
	return &resp, nil
}

func (p *PlanService) UpdatePlan(ctx context.Context, planID uuid.UUID, req request_models.UpdatePlanRequest) (*response_models.PlanResponse, error) {
	plan, err := p.planRepo.GetPlanById(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, utils.ErrInvalidInput
		}
		plan.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.PriceMinor != nil {
		plan.PriceMinor = *req.PriceMinor
	}
	if req.Currency != nil {
		plan.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Interval != nil {
		plan.Interval = db_models.BillingPeriod(*req.Interval)
	}
	if req.Features != nil {
		plan.Features = cleanFeatures(*req.Features)
	}
	if req.ImageURL != nil {
		plan.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.IsPopular != nil {
		plan.IsPopular = *req.IsPopular
	}

	if err := p.planRepo.Save(ctx, plan); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toPlanResponse(plan)
	return &resp, nil
}

// DeletePlan refuses plans that orders point at; deactivate those instead.
func (p *PlanService) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	inUse, err := p.planRepo.HasOrders(ctx, planID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if inUse {
		return utils.ErrPlanInUse
	}

	err = p.planRepo.Delete(ctx, planID)
	if errors.Is(err, repositories.ErrConditionFailed) {
		return utils.ErrPlanNotFound
	}
	if err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (p *PlanService) UploadPlanImage(ctx context.Context, planID uuid.UUID, data []byte) (*response_models.PlanResponse, error) {
	plan, err := p.planRepo.GetPlanById(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	obj, err := p.storage.UploadImage(ctx, FolderPlanImages, data)
	if err != nil {
		return nil, err
	}

	plan.ImageURL = obj.URL
	if err := p.planRepo.Save(ctx, plan); err != nil {
		if delErr := p.storage.Delete(ctx, obj.Key); delErr != nil {
			p.log.Warn("cleanup plan image", zap.String("key", obj.Key), zap.Error(delErr))
		}
		return nil, utils.ErrDatabaseError
	}

	resp := toPlanResponse(plan)
	return &resp, nil
}
