package response_models

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionResponse struct {
	ID       uuid.UUID `json:"id"`
	PlanID   uuid.UUID `json:"plan_id"`
	PlanName string    `json:"plan_name"`
	Interval string    `json:"interval"`
	Status   string    `json:"status"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	OrderID  uuid.UUID `json:"order_id"`
	DaysLeft int       `json:"days_left"`
}

type UserDashboard struct {
	TotalOrders     int64                 `json:"total_orders"`
	PendingOrders   int64                 `json:"pending_orders"`
	CompletedOrders int64                 `json:"completed_orders"`
	RecentOrders    []OrderResponse       `json:"recent_orders"`
	Subscription    *SubscriptionResponse `json:"subscription"`
}
