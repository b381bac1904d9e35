package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	dbm "storefront/internal/models/db_models"
	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/utils"
)

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, accountID uuid.UUID, req request_models.CreateOrderRequest) (*response_models.OrderResponse, error)
	GetOrder(ctx context.Context, accountID, orderID uuid.UUID) (*response_models.OrderResponse, error)
	ListMyOrders(ctx context.Context, accountID uuid.UUID, status, search string) ([]response_models.OrderResponse, error)
	CancelOrder(ctx context.Context, accountID, orderID uuid.UUID) (*response_models.OrderResponse, error)

	ListOrders(ctx context.Context, filter request_models.OrderFilter) (*utils.PagedData, error)
	GetOrderDetails(ctx context.Context, orderID uuid.UUID) (*response_models.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, adminID, orderID uuid.UUID, req request_models.UpdateOrderStatusRequest) (*response_models.OrderResponse, error)
}

type OrderService struct {
	orderRepo  repositories.OrderRepository
	planRepo   repositories.IPlanRepository
	couponRepo repositories.CouponRepository
	mail       IMailService
	log        *zap.Logger
	now        func() time.Time
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	planRepo repositories.IPlanRepository,
	couponRepo repositories.CouponRepository,
	mail IMailService,
	log *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		orderRepo:  orderRepo,
		planRepo:   planRepo,
		couponRepo: couponRepo,
		mail:       mail,
		log:        log.Named("orders"),
		now:        time.Now,
	}
}

type planSnapshot struct {
	Name       string   `json:"name"`
	Interval   string   `json:"interval"`
	PriceMinor int64    `json:"price_minor"`
	Currency   string   `json:"currency"`
	Features   []string `json:"features"`
}

func snapshotPlan(p *dbm.Plan) []byte {
	b, _ := json.Marshal(planSnapshot{
		Name:       p.Name,
		Interval:   string(p.Interval),
		PriceMinor: p.PriceMinor,
		Currency:   p.Currency,
		Features:   p.Features,
	})
	return b
}

// purchasedInterval reads the period frozen at checkout; orders without a usable
// snapshot fall back to the plan's current interval.
func purchasedInterval(order *dbm.Order) dbm.BillingPeriod {
	var snap planSnapshot
	if err := json.Unmarshal(order.PlanSnapshot, &snap); err == nil {
		switch p := dbm.BillingPeriod(snap.Interval); p {
		case dbm.PeriodMonth, dbm.PeriodYear, dbm.PeriodLifetime:
			return p
		}
	}
	return order.Plan.Interval
}

// CreateOrder prices the plan server-side and redeems the coupon atomically with the insert.
func (s *OrderService) CreateOrder(ctx context.Context, accountID uuid.UUID, req request_models.CreateOrderRequest) (*response_models.OrderResponse, error) {
	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	plan, err := s.planRepo.GetPlanById(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	if !plan.IsActive {
		return nil, utils.ErrPlanInactive
	}

	now := s.now()
	order := &dbm.Order{
		AccountID:        accountID,
		PlanID:           plan.ID,
		SubtotalMinor:    plan.PriceMinor,
		TotalAmountMinor: plan.PriceMinor,
		Currency:         plan.Currency,
		Status:           dbm.OrderPending,
		PlanSnapshot:     snapshotPlan(plan),
	}

	if code := strings.TrimSpace(req.CouponCode); code != "" {
		coupon, err := s.couponRepo.FindByCode(ctx, code)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if err := checkCoupon(coupon, now); err != nil {
			return nil, err
		}
		order.CouponID = &coupon.ID
		order.CouponCode = coupon.Code
		order.DiscountMinor = ApplyDiscount(plan.PriceMinor, coupon.DiscountType, coupon.DiscountValue)
		order.TotalAmountMinor = plan.PriceMinor - order.DiscountMinor
	}

	if err := s.orderRepo.Create(ctx, order, now.Unix()); err != nil {
		if errors.Is(err, repositories.ErrConditionFailed) {
			return nil, utils.ErrCouponExhausted
		}
		return nil, utils.ErrDatabaseError
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("account_id", accountID.String()),
		zap.Int64("total_minor", order.TotalAmountMinor),
	)

	order.Plan = *plan
	resp := toOrderResponse(order, false)
	return &resp, nil
}

func (s *OrderService) load(ctx context.Context, orderID uuid.UUID) (*dbm.Order, error) {
	order, err := s.orderRepo.FindById(ctx, orderID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if order == nil {
		return nil, utils.ErrOrderNotFound
	}
	return order, nil
}

// loadOwned treats other customers' orders as missing.
func (s *OrderService) loadOwned(ctx context.Context, accountID, orderID uuid.UUID) (*dbm.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.AccountID != accountID {
		return nil, utils.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, accountID, orderID uuid.UUID) (*response_models.OrderResponse, error) {
	order, err := s.loadOwned(ctx, accountID, orderID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order, false)
	return &resp, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, accountID uuid.UUID, status, search string) ([]response_models.OrderResponse, error) {
	orders, _, err := s.orderRepo.List(ctx, repositories.OrderQuery{
		AccountID: &accountID,
		Status:    status,
		Search:    search,
	})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toOrderResponses(orders, false), nil
}

func (s *OrderService) CancelOrder(ctx context.Context, accountID, orderID uuid.UUID) (*response_models.OrderResponse, error) {
	if _, err := s.loadOwned(ctx, accountID, orderID); err != nil {
		return nil, err
	}

	err := s.orderRepo.Cancel(ctx, orderID, accountID)
	if errors.Is(err, repositories.ErrConditionFailed) {
		return nil, utils.ErrOrderNotCancelable
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return s.GetOrder(ctx, accountID, orderID)
}

func (s *OrderService) ListOrders(ctx context.Context, filter request_models.OrderFilter) (*utils.PagedData, error) {
	orders, total, err := s.orderRepo.List(ctx, repositories.OrderQuery{
		Status:   filter.Status,
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &utils.PagedData{
		Items:    toOrderResponses(orders, true),
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	}, nil
}

func (s *OrderService) GetOrderDetails(ctx context.Context, orderID uuid.UUID) (*response_models.OrderResponse, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order, true)
	return &resp, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, adminID, orderID uuid.UUID, req request_models.UpdateOrderStatusRequest) (*response_models.OrderResponse, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	to := dbm.OrderStatus(req.Status)
	if !CanTransition(order.Status, to) {
		return nil, utils.ErrInvalidStatusTransition
	}

	now := s.now()
	update := repositories.ReviewUpdate{
		OrderID:       order.ID,
		From:          order.Status,
		To:            to,
		ReviewerID:    adminID,
		Note:          strings.TrimSpace(req.Note),
		At:            now.Unix(),
		PaymentStatus: paymentStatusFor(to),
	}
	if to == dbm.OrderCompleted {
		interval := purchasedInterval(order)
		update.Grant = &repositories.SubscriptionGrant{
			AccountID: order.AccountID,
			PlanID:    order.PlanID,
			Metadata:  order.PlanSnapshot,
			Window: func(latestEnd int64) (int64, int64) {
				return SubscriptionWindow(interval, latestEnd, now)
			},
		}
	}

	if err := s.orderRepo.ApplyReview(ctx, update); err != nil {
		if errors.Is(err, repositories.ErrConditionFailed) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrOrderConflict
		}
		return nil, utils.ErrDatabaseError
	}

	s.log.Info("order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(to)),
		zap.String("admin_id", adminID.String()),
	)

	updated, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.notifyStatus(updated)

	resp := toOrderResponse(updated, true)
	return &resp, nil
}

func (s *OrderService) notifyStatus(o *dbm.Order) {
	if o.Account.Email == "" {
		return
	}
	err := s.mail.SendOrderStatusChanged(OrderStatusNotice{
		To:       o.Account.Email,
		FullName: o.Account.FullName,
		OrderID:  o.ID.String(),
		PlanName: o.Plan.Name,
		Status:   string(o.Status),
		Note:     o.ReviewNote,
	})
	if err != nil {
		s.log.Warn("order status email failed", zap.String("order_id", o.ID.String()), zap.Error(err))
	}
}
