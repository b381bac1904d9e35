package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/utils"
)

type SubscriptionService interface {
	GetCurrentSubscription(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionResponse, error)
	// ExpireEnded flips active subscriptions past their end to expired.
	ExpireEnded(ctx context.Context) (int64, error)
}

type subscriptionService struct {
	repo repositories.SubscriptionRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewSubscriptionService(repo repositories.SubscriptionRepository, log *zap.Logger) SubscriptionService {
	return &subscriptionService{repo: repo, log: log.Named("subscriptions"), now: time.Now}
}

func (s *subscriptionService) GetCurrentSubscription(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionResponse, error) {
	now := s.now()
	sub, err := s.repo.FindCurrent(ctx, accountID, now.Unix())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub == nil {
		return nil, nil
	}

	ends := utils.FromUnixSeconds(sub.EndsAt)
	return &response_models.SubscriptionResponse{
		ID:       sub.ID,
		PlanID:   sub.PlanID,
		PlanName: sub.Plan.Name,
		Interval: string(sub.Plan.Interval),
		Status:   string(sub.Status),
		StartsAt: utils.FromUnixSeconds(sub.StartsAt),
		EndsAt:   ends,
		OrderID:  sub.OrderID,
		DaysLeft: int(ends.Sub(now).Hours() / 24),
	}, nil
}

func (s *subscriptionService) ExpireEnded(ctx context.Context) (int64, error) {
	n, err := s.repo.ExpireEnded(ctx, s.now().Unix())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("subscriptions expired", zap.Int64("count", n))
	}
	return n, nil
}
