package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"storefront/internal/models/db_models"
	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/utils"
)

type PaymentMethodServiceInterface interface {
	ListActive(ctx context.Context) ([]response_models.PaymentMethodResponse, error)
	ListAll(ctx context.Context) ([]response_models.PaymentMethodResponse, error)
	Create(ctx context.Context, req request_models.CreatePaymentMethodRequest) (*response_models.PaymentMethodResponse, error)
	Update(ctx context.Context, id uuid.UUID, req request_models.UpdatePaymentMethodRequest) (*response_models.PaymentMethodResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PaymentMethodService struct {
	repo repositories.PaymentMethodRepository
}

func NewPaymentMethodService(repo repositories.PaymentMethodRepository) PaymentMethodServiceInterface {
	return &PaymentMethodService{repo: repo}
}

func toPaymentMethodResponses(methods []db_models.PaymentMethod) []response_models.PaymentMethodResponse {
	out := make([]response_models.PaymentMethodResponse, 0, len(methods))
	for i := range methods {
		out = append(out, toPaymentMethodResponse(&methods[i]))
	}
	return out
}

func (s *PaymentMethodService) ListActive(ctx context.Context) ([]response_models.PaymentMethodResponse, error) {
	methods, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toPaymentMethodResponses(methods), nil
}

func (s *PaymentMethodService) ListAll(ctx context.Context) ([]response_models.PaymentMethodResponse, error) {
	methods, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toPaymentMethodResponses(methods), nil
}

func (s *PaymentMethodService) Create(ctx context.Context, req request_models.CreatePaymentMethodRequest) (*response_models.PaymentMethodResponse, error) {
	method := &db_models.PaymentMethod{
		MethodName:    strings.TrimSpace(req.MethodName),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		AccountName:   strings.TrimSpace(req.AccountName),
		Instructions:  req.Instructions,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	if method.MethodName == "" || method.AccountNumber == "" {
		return nil, utils.ErrInvalidInput
	}

	if err := s.repo.Create(ctx, method); err != nil {
		return nil, utils.ErrDatabaseError
	}
	resp := toPaymentMethodResponse(method)
	return &resp, nil
}

func (s *PaymentMethodService) Update(ctx context.Context, id uuid.UUID, req request_models.UpdatePaymentMethodRequest) (*response_models.PaymentMethodResponse, error) {
	method, err := s.repo.FindById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if method == nil {
		return nil, utils.ErrPaymentMethodNotFound
	}

	if req.MethodName != nil {
		method.MethodName = strings.TrimSpace(*req.MethodName)
	}
	if req.AccountNumber != nil {
		method.AccountNumber = strings.TrimSpace(*req.AccountNumber)
	}
	if req.AccountName != nil {
		method.AccountName = strings.TrimSpace(*req.AccountName)
	}
	if req.Instructions != nil {
		method.Instructions = *req.Instructions
	}
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}
	if method.MethodName == "" || method.AccountNumber == "" {
		return nil, utils.ErrInvalidInput
	}

	if err := s.repo.Save(ctx, method); err != nil {
		return nil, utils.ErrDatabaseError
	}
	resp := toPaymentMethodResponse(method)
	return &resp, nil
}

func (s *PaymentMethodService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrConditionFailed) {
		return utils.ErrPaymentMethodNotFound
	}
	if err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
