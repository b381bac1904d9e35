package services

import (
	"time"

	dbm "storefront/internal/models/db_models"
)

type Stage string

const (
	StageAwaitingPayment Stage = "awaiting_payment"
	StageSubmitted       Stage = "submitted"
	StageApproved        Stage = "approved"
	StageRejected        Stage = "rejected"
	StageCompleted       Stage = "completed"
	StageCancelled       Stage = "cancelled"
)

var orderTransitions = map[dbm.OrderStatus][]dbm.OrderStatus{
	dbm.OrderPending:  {dbm.OrderApproved, dbm.OrderRejected, dbm.OrderCompleted, dbm.OrderCancelled},
	dbm.OrderApproved: {dbm.OrderRejected, dbm.OrderCompleted},
	dbm.OrderRejected: {dbm.OrderPending},
}

func CanTransition(from, to dbm.OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// paymentStatusFor is the status pending payments take when an order moves to status.
func paymentStatusFor(status dbm.OrderStatus) dbm.PaymentStatus {
	switch status {
	case dbm.OrderApproved, dbm.OrderCompleted:
		return dbm.PaymentVerified
	case dbm.OrderRejected:
		return dbm.PaymentRejected
	}
	return ""
}

// OrderStage is the customer-facing progress; a pending order with a payment
// awaiting review is "submitted".
func OrderStage(o *dbm.Order) Stage {
	switch o.Status {
	case dbm.OrderPending:
		for _, p := range o.Payments {
			if p.Status == dbm.PaymentPending {
				return StageSubmitted
			}
		}
		return StageAwaitingPayment
	case dbm.OrderApproved:
		return StageApproved
	case dbm.OrderRejected:
		return StageRejected
	case dbm.OrderCompleted:
		return StageCompleted
	case dbm.OrderCancelled:
		return StageCancelled
	}
	return Stage(o.Status)
}

const lifetimeYears = 100

// SubscriptionWindow extends from latestEnd when the account is still covered.
func SubscriptionWindow(interval dbm.BillingPeriod, latestEnd int64, now time.Time) (int64, int64) {
	starts := now.UTC()
	if latestEnd > now.Unix() {
		starts = time.Unix(latestEnd, 0).UTC()
	}

	var ends time.Time
	switch interval {
	case dbm.PeriodYear:
		ends = starts.AddDate(1, 0, 0)
	case dbm.PeriodLifetime:
		ends = starts.AddDate(lifetimeYears, 0, 0)
	default:
		ends = starts.AddDate(0, 1, 0)
	}
	return starts.Unix(), ends.Unix()
}
