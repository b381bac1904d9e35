package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "storefront/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountTotalAccounts(ctx context.Context) (int64, error)
	CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error)
	CountActivePlans(ctx context.Context) (int64, error)
	CountActiveSubscriptions(ctx context.Context, now time.Time) (int64, error)
	SumCompletedRevenue(ctx context.Context, start, end *time.Time) (int64, error)

	// Time series
	RevenueSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)
	NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)

	// MRR compute helpers
	ActiveSubscriptionsWithPlan(ctx context.Context, now time.Time) ([]SubWithPlan, error)

	// Plan mix (completed orders in range)
	PlanMix(ctx context.Context, start, end time.Time) ([]PlanMixRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type BucketSum struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sum    int64     `gorm:"column:sum"`
}

type SubWithPlan struct {
	SubID      string `gorm:"column:sub_id"`
	PlanID     string `gorm:"column:plan_id"`
	Interval   string `gorm:"column:billing_interval"`
	PriceMinor int64  `gorm:"column:price_minor"`
}

type PlanMixRow struct {
	PlanID       string `gorm:"column:plan_id"`
	PlanName     string `gorm:"column:plan_name"`
	Interval     string `gorm:"column:billing_interval"`
	Count        int64  `gorm:"column:count"`
	RevenueMinor int64  `gorm:"column:revenue_minor"`
}

// ---------- Helpers ----------

// dateTrunc buckets a column holding UNIX seconds, optionally in a timezone:
// date_trunc('day', timezone('Asia/Dhaka', to_timestamp(completed_at)))
func dateTrunc(interval, tz string, unixColumn string) (string, []interface{}) {
	if tz == "" {
		return "date_trunc(?, to_timestamp(" + unixColumn + "))", []interface{}{interval}
	}
	return "date_trunc(?, timezone(?, to_timestamp(" + unixColumn + ")))", []interface{}{interval, tz}
}

// ---------- Counts ----------
func (r *dashboardRepository) CountTotalAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Account{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Account{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountActivePlans(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Plan{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountActiveSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Subscription{}).
		Where("status = ?", dbm.SubStatusActive).
		Where("starts_at <= ? AND ends_at > ?", now.Unix(), now.Unix()).
		Distinct("account_id").
		Count(&n).Error
	return n, err
}

// SumCompletedRevenue sums completed order totals, optionally bounded by completed_at.
func (r *dashboardRepository) SumCompletedRevenue(ctx context.Context, start, end *time.Time) (int64, error) {
	var sum int64
	q := r.db.WithContext(ctx).
		Model(&dbm.Order{}).
		Select("COALESCE(SUM(total_amount_minor), 0)").
		Where("status = ?", dbm.OrderCompleted)
	if start != nil && end != nil {
		q = q.Where("completed_at BETWEEN ? AND ?", start.Unix(), end.Unix())
	}
	err := q.Scan(&sum).Error
	return sum, err
}

// ---------- Series ----------
func (r *dashboardRepository) RevenueSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	truncExpr, args := dateTrunc(interval, tz, "completed_at")
	tx := r.db.WithContext(ctx).
		Table("orders").
		Select(truncExpr+" AS bucket, SUM(total_amount_minor) AS sum", args...).
		Where("status = ?", dbm.OrderCompleted).
		Where("deleted_at IS NULL").
		Where("completed_at IS NOT NULL").
		Where("completed_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC")
	err := tx.Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	truncExpr, args := dateTrunc(interval, tz, "created_at")
	tx := r.db.WithContext(ctx).
		Table("accounts").
		Select(truncExpr+" AS bucket, COUNT(*) AS sum", args...).
		Where("deleted_at IS NULL").
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC")
	err := tx.Find(&rows).Error
	return rows, err
}

// ---------- MRR helpers ----------
func (r *dashboardRepository) ActiveSubscriptionsWithPlan(ctx context.Context, now time.Time) ([]SubWithPlan, error) {
	var rows []SubWithPlan
	err := r.db.WithContext(ctx).
		Table("subscriptions s").
		Select("s.id AS sub_id, s.plan_id, p.billing_interval, p.price_minor").
		Joins("JOIN plans p ON p.id = s.plan_id").
		Where("s.deleted_at IS NULL").
		Where("s.starts_at <= ? AND s.ends_at > ?", now.Unix(), now.Unix()).
		Where("s.status = ?", dbm.SubStatusActive).
		Find(&rows).Error
	return rows, err
}

// ---------- Plan mix ----------
func (r *dashboardRepository) PlanMix(ctx context.Context, start, end time.Time) ([]PlanMixRow, error) {
	var rows []PlanMixRow
	err := r.db.WithContext(ctx).
		Table("orders o").
		Select(`
			o.plan_id,
			p.name AS plan_name,
			p.billing_interval,
			COUNT(*) AS count,
			COALESCE(SUM(o.total_amount_minor), 0) AS revenue_minor`).
		Joins("JOIN plans p ON p.id = o.plan_id").
		Where("o.deleted_at IS NULL").
		Where("o.status = ?", dbm.OrderCompleted).
		Where("o.completed_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("o.plan_id, p.name, p.billing_interval").
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}
