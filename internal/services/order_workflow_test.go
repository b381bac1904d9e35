package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	dbm "storefront/internal/models/db_models"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]dbm.OrderStatus]bool{
		{dbm.OrderPending, dbm.OrderApproved}:   true,
		{dbm.OrderPending, dbm.OrderRejected}:   true,
		{dbm.OrderPending, dbm.OrderCompleted}:  true,
		{dbm.OrderPending, dbm.OrderCancelled}:  true,
		{dbm.OrderApproved, dbm.OrderRejected}:  true,
		{dbm.OrderApproved, dbm.OrderCompleted}: true,
		{dbm.OrderRejected, dbm.OrderPending}:   true,
	}
	all := []dbm.OrderStatus{dbm.OrderPending, dbm.OrderApproved, dbm.OrderRejected, dbm.OrderCompleted, dbm.OrderCancelled}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]dbm.OrderStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStage(t *testing.T) {
	o := &dbm.Order{Status: dbm.OrderPending}
	assert.Equal(t, StageAwaitingPayment, OrderStage(o))

	o.Payments = []dbm.Payment{{Status: dbm.PaymentRejected}}
	assert.Equal(t, StageAwaitingPayment, OrderStage(o))

	o.Payments = append(o.Payments, dbm.Payment{Status: dbm.PaymentPending})
	assert.Equal(t, StageSubmitted, OrderStage(o))

	o.Status = dbm.OrderCompleted
	assert.Equal(t, StageCompleted, OrderStage(o))
}

func TestSubscriptionWindow(t *testing.T) {
	now := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)

	start, end := SubscriptionWindow(dbm.PeriodMonth, 0, now)
	assert.Equal(t, now.Unix(), start)
	assert.Equal(t, now.AddDate(0, 1, 0).Unix(), end)

	existing := now.Add(48 * time.Hour).Unix()
	start, end = SubscriptionWindow(dbm.PeriodYear, existing, now)
	assert.Equal(t, existing, start)
	assert.Equal(t, time.Unix(existing, 0).UTC().AddDate(1, 0, 0).Unix(), end)

	_, end = SubscriptionWindow(dbm.PeriodLifetime, now.Add(-time.Hour).Unix(), now)
	assert.Equal(t, now.AddDate(100, 0, 0).Unix(), end)
}
