package response_models

import (
	"time"

	"github.com/google/uuid"
)

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// "day" | "week" | "month"
	Interval string `json:"interval"`
	Timezone string `json:"timezone,omitempty"`
}

type KPIBlock struct {
	TotalUsers          int64 `json:"total_users"`
	NewUsers            int64 `json:"new_users"`
	TotalOrders         int64 `json:"total_orders"`
	PendingOrders       int64 `json:"pending_orders"`
	AwaitingReview      int64 `json:"awaiting_review"` // pending orders with a pending payment
	CompletedOrders     int64 `json:"completed_orders"`
	ActivePlans         int64 `json:"active_plans"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`

	RevenueMinor       int64   `json:"revenue_minor"`        // all-time, completed orders
	PeriodRevenueMinor int64   `json:"period_revenue_minor"` // completed within range
	MRRMinor           int64   `json:"mrr_minor"`
	ARRMinor           int64   `json:"arr_minor"`
	ARPUMinor          float64 `json:"arpu_minor"`
}

type SeriesPoint struct {
	Bucket time.Time `json:"bucket"`
	Value  int64     `json:"value"`
}

type RevenueSeries struct {
	Currency   string        `json:"currency"`
	Points     []SeriesPoint `json:"points"`
	TotalMinor int64         `json:"total_minor"`
}

type CountSeries struct {
	Points []SeriesPoint `json:"points"`
}

type PlanMixItem struct {
	PlanID       uuid.UUID `json:"plan_id"`
	PlanName     string    `json:"plan_name"`
	Interval     string    `json:"interval"`
	Count        int64     `json:"count"`
	Percent      float64   `json:"percent"`
	RevenueMinor int64     `json:"revenue_minor"`
}

type PlanMix struct {
	Items []PlanMixItem `json:"items"`
}

type DashboardReport struct {
	Range        TimeRange       `json:"range"`
	KPIs         KPIBlock        `json:"kpis"`
	Revenue      RevenueSeries   `json:"revenue"`
	NewUsers     CountSeries     `json:"new_users"`
	PlanMix      PlanMix         `json:"plan_mix"`
	RecentOrders []OrderResponse `json:"recent_orders"`
}
