package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	dbm "storefront/internal/models/db_models"
	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/utils"
)

type CouponServiceInterface interface {
	ValidateCoupon(ctx context.Context, code string, planID uuid.UUID) (*response_models.CouponQuote, error)
	ListCoupons(ctx context.Context) ([]response_models.CouponResponse, error)
	CreateCoupon(ctx context.Context, req request_models.CreateCouponRequest) (*response_models.CouponResponse, error)
	UpdateCoupon(ctx context.Context, id uuid.UUID, req request_models.UpdateCouponRequest) (*response_models.CouponResponse, error)
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
}

type CouponService struct {
	couponRepo repositories.CouponRepository
	planRepo   repositories.IPlanRepository
	now        func() time.Time
}

func NewCouponService(couponRepo repositories.CouponRepository, planRepo repositories.IPlanRepository) CouponServiceInterface {
	return &CouponService{couponRepo: couponRepo, planRepo: planRepo, now: time.Now}
}

// checkCoupon applies the redeemability rules to a looked-up coupon.
func checkCoupon(c *dbm.Coupon, now time.Time) error {
	if c == nil || !c.IsActive {
		return utils.ErrInvalidCoupon
	}
	if c.ExpiresAt != nil && *c.ExpiresAt <= now.Unix() {
		return utils.ErrCouponExpired
	}
	if c.MaxUses > 0 && c.UsageCount >= c.MaxUses {
		return utils.ErrCouponExhausted
	}
	return nil
}

func (s *CouponService) ValidateCoupon(ctx context.Context, code string, planID uuid.UUID) (*response_models.CouponQuote, error) {
	plan, err := s.planRepo.GetPlanById(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil || !plan.IsActive {
		return nil, utils.ErrPlanNotFound
	}

	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if err := checkCoupon(coupon, s.now()); err != nil {
		return nil, err
	}

	discount := ApplyDiscount(plan.PriceMinor, coupon.DiscountType, coupon.DiscountValue)
	return &response_models.CouponQuote{
		Code:          coupon.Code,
		DiscountType:  string(coupon.DiscountType),
		DiscountValue: coupon.DiscountValue,
		PlanID:        plan.ID,
		Currency:      plan.Currency,
		SubtotalMinor: plan.PriceMinor,
		DiscountMinor: discount,
		TotalMinor:    plan.PriceMinor - discount,
	}, nil
}

func (s *CouponService) ListCoupons(ctx context.Context) ([]response_models.CouponResponse, error) {
	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.CouponResponse, 0, len(coupons))
	for i := range coupons {
		out = append(out, toCouponResponse(&coupons[i]))
	}
	return out, nil
}

func normalizeCouponCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 3 || strings.ContainsAny(code, " \t\r\n") {
		return "", utils.ErrInvalidInput
	}
	return code, nil
}

func validateDiscountValue(t dbm.DiscountType, v decimal.Decimal) error {
	if v.Sign() <= 0 {
		return utils.ErrInvalidInput
	}
	if t == dbm.DiscountPercentage && v.GreaterThan(hundred) {
		return utils.ErrInvalidInput
	}
	return nil
}

func (s *CouponService) CreateCoupon(ctx context.Context, req request_models.CreateCouponRequest) (*response_models.CouponResponse, error) {
	code, err := normalizeCouponCode(req.Code)
	if err != nil {
		return nil, err
	}
	discountType := dbm.DiscountType(req.DiscountType)
	if err := validateDiscountValue(discountType, req.DiscountValue); err != nil {
		return nil, err
	}

	existing, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrCouponCodeConflict
	}

	coupon := &dbm.Coupon{
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: req.DiscountValue,
		MaxUses:       req.MaxUses,
		ExpiresAt:     utils.TimePtrToUnix(req.ExpiresAt),
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrCouponCodeConflict
		}
		return nil, utils.ErrDatabaseError
	}

	resp := toCouponResponse(coupon)
	return &resp, nil
}

func (s *CouponService) UpdateCoupon(ctx context.Context, id uuid.UUID, req request_models.UpdateCouponRequest) (*response_models.CouponResponse, error) {
	coupon, err := s.couponRepo.FindById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if coupon == nil {
		return nil, utils.ErrCouponNotFound
	}

	if req.DiscountType != nil {
		coupon.DiscountType = dbm.DiscountType(*req.DiscountType)
	}
	if req.DiscountValue != nil {
		coupon.DiscountValue = *req.DiscountValue
	}
	if err := validateDiscountValue(coupon.DiscountType, coupon.DiscountValue); err != nil {
		return nil, err
	}
	if req.MaxUses != nil {
		coupon.MaxUses = *req.MaxUses
	}
	if req.ClearExpiry {
		coupon.ExpiresAt = nil
	} else if req.ExpiresAt != nil {
		coupon.ExpiresAt = utils.TimePtrToUnix(req.ExpiresAt)
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toCouponResponse(coupon)
	return &resp, nil
}

func (s *CouponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	err := s.couponRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrConditionFailed) {
		return utils.ErrCouponNotFound
	}
	if err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
