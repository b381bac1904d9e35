package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	dbm "storefront/internal/models/db_models"
	resp "storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/utils"
)

const recentOrdersLimit = 5

type DashboardService interface {
	BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error)
	BuildUserDashboard(ctx context.Context, accountID uuid.UUID) (*resp.UserDashboard, error)
}

type dashboardService struct {
	repo        repositories.DashboardRepository
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
	subs        SubscriptionService
	currency    string
	timezone    string
	log         *zap.Logger
	now         func() time.Time
}

func NewDashboardService(
	repo repositories.DashboardRepository,
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	subs SubscriptionService,
	currency, timezone string,
	log *zap.Logger,
) DashboardService {
	return &dashboardService{
		repo:        repo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		subs:        subs,
		currency:    currency,
		timezone:    timezone,
		log:         log.Named("dashboard"),
		now:         time.Now,
	}
}

// normalizeRange ensures sane defaults and ordering
func (s *dashboardService) normalizeRange(r resp.TimeRange) resp.TimeRange {
	out := r
	switch out.Interval {
	case "day", "week", "month":
	default:
		out.Interval = "day"
	}
	if out.End.IsZero() {
		out.End = s.now().UTC()
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -30) // last 30 days default
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	if out.Timezone == "" {
		out.Timezone = s.timezone
	}
	if utils.LoadLocation(out.Timezone).String() != out.Timezone {
		out.Timezone = "UTC"
	}
	return out
}

func monthlyEquivalent(priceMinor int64, interval string) int64 {
	switch interval {
	case string(dbm.PeriodMonth):
		return priceMinor
	case string(dbm.PeriodYear):
		return priceMinor / 12
	default:
		// lifetime purchases are one-off revenue
		return 0
	}
}

func toPoints(rows []repositories.BucketSum) ([]resp.SeriesPoint, int64) {
	points := make([]resp.SeriesPoint, 0, len(rows))
	var total int64
	for _, r := range rows {
		points = append(points, resp.SeriesPoint{Bucket: r.Bucket, Value: r.Sum})
		total += r.Sum
	}
	return points, total
}

func countFor(rows []repositories.StatusCount, status dbm.OrderStatus) int64 {
	for _, r := range rows {
		if r.Status == status {
			return r.Count
		}
	}
	return 0
}

func (s *dashboardService) BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error) {
	rng = s.normalizeRange(rng)
	now := s.now()

	// ---------- Core counts ----------
	totalUsers, err := s.repo.CountTotalAccounts(ctx)
	if err != nil {
		return nil, err
	}
	newUsers, err := s.repo.CountNewAccounts(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	activePlans, err := s.repo.CountActivePlans(ctx)
	if err != nil {
		return nil, err
	}
	activeSubs, err := s.repo.CountActiveSubscriptions(ctx, now)
	if err != nil {
		return nil, err
	}

	statusRows, err := s.orderRepo.CountByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}
	var totalOrders int64
	for _, r := range statusRows {
		totalOrders += r.Count
	}
	awaitingReview, err := s.paymentRepo.CountPendingReview(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.repo.SumCompletedRevenue(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	// ---------- Series ----------
	revenueRows, err := s.repo.RevenueSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}
	revenuePoints, periodRevenue := toPoints(revenueRows)

	newUsersRows, err := s.repo.NewUsersSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}
	newUsersPoints, _ := toPoints(newUsersRows)

	// ---------- Financials: MRR/ARR/ARPU ----------
	activeWithPlan, err := s.repo.ActiveSubscriptionsWithPlan(ctx, now)
	if err != nil {
		return nil, err
	}
	var mrr int64
	for _, row := range activeWithPlan {
		mrr += monthlyEquivalent(row.PriceMinor, row.Interval)
	}
	var arpu float64
	if activeSubs > 0 {
		arpu = float64(mrr) / float64(activeSubs)
	}

	// ---------- Plan mix ----------
	planRows, err := s.repo.PlanMix(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	var mixTotal float64
	for _, r := range planRows {
		mixTotal += float64(r.Count)
	}
	planMixItems := make([]resp.PlanMixItem, 0, len(planRows))
	for _, r := range planRows {
		id, err := uuid.Parse(r.PlanID)
		if err != nil {
			s.log.Warn("skipping plan mix row", zap.String("plan_id", r.PlanID), zap.Error(err))
			continue
		}
		var pct float64
		if mixTotal > 0 {
			pct = float64(r.Count) * 100.0 / mixTotal
		}
		planMixItems = append(planMixItems, resp.PlanMixItem{
			PlanID:       id,
			PlanName:     r.PlanName,
			Interval:     r.Interval,
			Count:        r.Count,
			Percent:      pct,
			RevenueMinor: r.RevenueMinor,
		})
	}

	// ---------- Recent orders ----------
	recent, err := s.orderRepo.Recent(ctx, nil, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	return &resp.DashboardReport{
		Range: rng,
		KPIs: resp.KPIBlock{
			TotalUsers:          totalUsers,
			NewUsers:            newUsers,
			TotalOrders:         totalOrders,
			PendingOrders:       countFor(statusRows, dbm.OrderPending),
			AwaitingReview:      awaitingReview,
			CompletedOrders:     countFor(statusRows, dbm.OrderCompleted),
			ActivePlans:         activePlans,
			ActiveSubscriptions: activeSubs,

			RevenueMinor:       revenue,
			PeriodRevenueMinor: periodRevenue,
			MRRMinor:           mrr,
			ARRMinor:           mrr * 12,
			ARPUMinor:          arpu,
		},
		Revenue: resp.RevenueSeries{
			Currency:   s.currency,
			Points:     revenuePoints,
			TotalMinor: periodRevenue,
		},
		NewUsers:     resp.CountSeries{Points: newUsersPoints},
		PlanMix:      resp.PlanMix{Items: planMixItems},
		RecentOrders: toOrderResponses(recent, true),
	}, nil
}

func (s *dashboardService) BuildUserDashboard(ctx context.Context, accountID uuid.UUID) (*resp.UserDashboard, error) {
	statusRows, err := s.orderRepo.CountByStatus(ctx, &accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	var total int64
	for _, r := range statusRows {
		total += r.Count
	}

	recent, err := s.orderRepo.Recent(ctx, &accountID, recentOrdersLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	sub, err := s.subs.GetCurrentSubscription(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &resp.UserDashboard{
		TotalOrders:     total,
		PendingOrders:   countFor(statusRows, dbm.OrderPending),
		CompletedOrders: countFor(statusRows, dbm.OrderCompleted),
		RecentOrders:    toOrderResponses(recent, false),
		Subscription:    sub,
	}, nil
}
