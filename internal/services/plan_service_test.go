package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront/internal/config"
	dbm "storefront/internal/models/db_models"
	"storefront/internal/models/request_models"
	"storefront/pkg/utils"
)

func newPlanFixture(t *testing.T, plans ...*dbm.Plan) (PlanServiceInterface, *fakePlanRepo) {
	repo := newFakePlanRepo(plans...)
	return NewPlanService(repo, newMemStorage(t), &config.Config{Currency: "BDT"}, testLogger()), repo
}

func TestCreatePlanDefaults(t *testing.T) {
	svc, _ := newPlanFixture(t)
	price := int64(49900)

	p, err := svc.CreatePlan(context.Background(), request_models.CreatePlanRequest{
		Name:       " Yearly ",
		PriceMinor: &price,
		Interval:   "year",
		Features:   []string{" Priority support ", "", "Unlimited"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Yearly", p.Name)
	assert.Equal(t, "BDT", p.Currency)
	assert.True(t, p.IsActive)
	assert.Equal(t, []string{"Priority support", "Unlimited"}, p.Features)
}

func TestPublicPlansHideInactive(t *testing.T) {
	active := &dbm.Plan{Name: "Pro", PriceMinor: 2000, Currency: "USD", Interval: dbm.PeriodMonth, IsActive: true}
	cheap := &dbm.Plan{Name: "Lite", PriceMinor: 500, Currency: "USD", Interval: dbm.PeriodMonth, IsActive: true}
	hidden := &dbm.Plan{Name: "Legacy", PriceMinor: 100, Currency: "USD", Interval: dbm.PeriodMonth}
	svc, _ := newPlanFixture(t, active, cheap, hidden)
	ctx := context.Background()

	plans, err := svc.ListActivePlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Lite", plans[0].Name)

	_, err = svc.GetPlan(ctx, hidden.ID, false)
	assert.ErrorIs(t, err, utils.ErrPlanNotFound)

	p, err := svc.GetPlan(ctx, hidden.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Legacy", p.Name)

	all, err := svc.ListAllPlans(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdatePlanPartial(t *testing.T) {
	plan := &dbm.Plan{Name: "Pro", PriceMinor: 2000, Currency: "USD", Interval: dbm.PeriodMonth, IsActive: true}
	svc, _ := newPlanFixture(t, plan)
	ctx := context.Background()

	price := int64(2500)
	inactive := false
	p, err := svc.UpdatePlan(ctx, plan.ID, request_models.UpdatePlanRequest{PriceMinor: &price, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), p.PriceMinor)
	assert.False(t, p.IsActive)
	assert.Equal(t, "Pro", p.Name)

	blank := "  "
	_, err = svc.UpdatePlan(ctx, plan.ID, request_models.UpdatePlanRequest{Name: &blank})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.UpdatePlan(ctx, uuid.New(), request_models.UpdatePlanRequest{})
	assert.ErrorIs(t, err, utils.ErrPlanNotFound)
}

func TestDeletePlanInUse(t *testing.T) {
	used := &dbm.Plan{Name: "Pro", PriceMinor: 2000, Currency: "USD", Interval: dbm.PeriodMonth}
	unused := &dbm.Plan{Name: "Lite", PriceMinor: 500, Currency: "USD", Interval: dbm.PeriodMonth}
	svc, repo := newPlanFixture(t, used, unused)
	repo.hasOrders[used.ID] = true
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeletePlan(ctx, used.ID), utils.ErrPlanInUse)
	require.NoError(t, svc.DeletePlan(ctx, unused.ID))
	assert.ErrorIs(t, svc.DeletePlan(ctx, unused.ID), utils.ErrPlanNotFound)
}

func TestUploadPlanImage(t *testing.T) {
	plan := &dbm.Plan{Name: "Pro", PriceMinor: 2000, Currency: "USD", Interval: dbm.PeriodMonth, IsActive: true}
	svc, repo := newPlanFixture(t, plan)
	ctx := context.Background()

	p, err := svc.UploadPlanImage(ctx, plan.ID, pngBytes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ImageURL, "http://api.test/assets/plan_images/"))
	assert.Equal(t, p.ImageURL, repo.plans[plan.ID].ImageURL)

	_, err = svc.UploadPlanImage(ctx, plan.ID, []byte("GIF? no, just text"))
	assert.ErrorIs(t, err, utils.ErrUnsupportedFile)

	_, err = svc.UploadPlanImage(ctx, uuid.New(), pngBytes)
	assert.ErrorIs(t, err, utils.ErrPlanNotFound)
}

func TestPaymentMethods(t *testing.T) {
	repo := newFakeMethodRepo(&dbm.PaymentMethod{MethodName: "Nagad", AccountNumber: "017", IsActive: false})
	svc := NewPaymentMethodService(repo)
	ctx := context.Background()

	m, err := svc.Create(ctx, request_models.CreatePaymentMethodRequest{MethodName: " bKash ", AccountNumber: "01700000000"})
	require.NoError(t, err)
	assert.Equal(t, "bKash", m.MethodName)
	assert.True(t, m.IsActive)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	empty := ""
	_, err = svc.Update(ctx, m.ID, request_models.UpdatePaymentMethodRequest{AccountNumber: &empty})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.ErrorIs(t, svc.Delete(ctx, m.ID), utils.ErrPaymentMethodNotFound)
}

func TestSubscriptionService(t *testing.T) {
	repo := &fakeSubRepo{expired: 2}
	svc := NewSubscriptionService(repo, testLogger())
	ctx := context.Background()

	sub, err := svc.GetCurrentSubscription(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, sub)

	n, err := svc.ExpireEnded(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
