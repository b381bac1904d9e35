package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"storefront/internal/models/db_models"
)

type OrderQuery struct {
	AccountID *uuid.UUID
	Status    string
	Search    string
	Page      int // 0 disables paging
	PageSize  int
}

// SubscriptionGrant describes the subscription created when an order completes.
// Window receives the end of the account's latest active subscription
// (0 when none) and returns the new starts_at/ends_at.
type SubscriptionGrant struct {
	AccountID uuid.UUID
	PlanID    uuid.UUID
	Metadata  []byte
	Window    func(latestEnd int64) (startsAt, endsAt int64)
}

type ReviewUpdate struct {
	OrderID       uuid.UUID
	From          db_models.OrderStatus
	To            db_models.OrderStatus
	ReviewerID    uuid.UUID
	Note          string
	At            int64
	PaymentStatus db_models.PaymentStatus // applied to pending payments when set
	Grant         *SubscriptionGrant
}

type StatusCount struct {
	Status db_models.OrderStatus `gorm:"column:status"`
	Count  int64                 `gorm:"column:count"`
}

type OrderRepository interface {
	// Create inserts the order and, when CouponID is set, redeems the coupon
	// in the same transaction.
	Create(ctx context.Context, order *db_models.Order, now int64) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Order, error)
	List(ctx context.Context, q OrderQuery) ([]db_models.Order, int64, error)
	Cancel(ctx context.Context, id, accountID uuid.UUID) error
	ApplyReview(ctx context.Context, u ReviewUpdate) error
	CountByStatus(ctx context.Context, accountID *uuid.UUID) ([]StatusCount, error)
	Recent(ctx context.Context, accountID *uuid.UUID, limit int) ([]db_models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *db_models.Order, now int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.CouponID != nil {
			res := tx.Model(&db_models.Coupon{}).
				Where("id = ? AND is_active = ?", *order.CouponID, true).
				Where("max_uses = 0 OR usage_count < max_uses").
				Where("expires_at IS NULL OR expires_at > ?", now).
				UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrConditionFailed
			}
		}
		return tx.Create(order).Error
	})
}

func (r *orderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Plan", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Account").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payments.created_at DESC") }).
		Preload("Payments.PaymentMethod", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

func (r *orderRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Order, error) {
	var order db_models.Order
	err := r.preloaded(ctx).First(&order, "orders.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, q OrderQuery) ([]db_models.Order, int64, error) {
	base := r.db.WithContext(ctx).Model(&db_models.Order{})
	if q.AccountID != nil {
		base = base.Where("orders.account_id = ?", *q.AccountID)
	}
	if q.Status != "" {
		base = base.Where("orders.status = ?", q.Status)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		base = base.
			Joins("JOIN accounts ON accounts.id = orders.account_id").
			Joins("JOIN plans ON plans.id = orders.plan_id").
			Where("CAST(orders.id AS text) ILIKE ? OR accounts.full_name ILIKE ? OR accounts.email ILIKE ? OR plans.name ILIKE ?",
				s+"%", likePattern(s), likePattern(s), likePattern(s))
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []uuid.UUID
	page := base.Order("orders.created_at DESC")
	if q.Page > 0 && q.PageSize > 0 {
		page = page.Offset((q.Page - 1) * q.PageSize).Limit(q.PageSize)
	}
	if err := page.Pluck("orders.id", &ids).Error; err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []db_models.Order{}, total, nil
	}

	var orders []db_models.Order
	err := r.preloaded(ctx).
		Where("orders.id IN ?", ids).
		Order("orders.created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) Cancel(ctx context.Context, id, accountID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&db_models.Order{}).
		Where("id = ? AND account_id = ? AND status = ?", id, accountID, db_models.OrderPending).
		Where("NOT EXISTS (SELECT 1 FROM payments p WHERE p.order_id = orders.id AND p.status = ? AND p.deleted_at IS NULL)", db_models.PaymentVerified).
		Updates(map[string]interface{}{
			"status":     db_models.OrderCancelled,
			"updated_at": time.Now().Unix(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (r *orderRepository) ApplyReview(ctx context.Context, u ReviewUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		values := map[string]interface{}{
			"status":      u.To,
			"reviewed_by": u.ReviewerID,
			"review_note": u.Note,
			"reviewed_at": u.At,
			"updated_at":  u.At,
		}
		if u.To == db_models.OrderCompleted {
			values["completed_at"] = u.At
		}

		res := tx.Model(&db_models.Order{}).
			Where("id = ? AND status = ?", u.OrderID, u.From).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConditionFailed
		}

		if u.PaymentStatus != "" {
			err := tx.Model(&db_models.Payment{}).
				Where("order_id = ? AND status = ?", u.OrderID, db_models.PaymentPending).
				Updates(map[string]interface{}{"status": u.PaymentStatus, "updated_at": u.At}).Error
			if err != nil {
				return err
			}
		}

		if u.Grant != nil {
			return grantSubscription(tx, u.OrderID, u.At, u.Grant)
		}
		return nil
	})
}

func grantSubscription(tx *gorm.DB, orderID uuid.UUID, now int64, g *SubscriptionGrant) error {
	var latestEnd int64
	err := tx.Model(&db_models.Subscription{}).
		Where("account_id = ? AND status = ? AND ends_at > ?", g.AccountID, db_models.SubStatusActive, now).
		Select("COALESCE(MAX(ends_at), 0)").
		Scan(&latestEnd).Error
	if err != nil {
		return err
	}

	startsAt, endsAt := g.Window(latestEnd)
	sub := &db_models.Subscription{
		AccountID: g.AccountID,
		PlanID:    g.PlanID,
		OrderID:   orderID,
		Status:    db_models.SubStatusActive,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Metadata:  g.Metadata,
	}
	return tx.Create(sub).Error
}

func (r *orderRepository) CountByStatus(ctx context.Context, accountID *uuid.UUID) ([]StatusCount, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Order{}).Select("status, COUNT(*) AS count")
	if accountID != nil {
		q = q.Where("account_id = ?", *accountID)
	}

	var rows []StatusCount
	err := q.Group("status").Find(&rows).Error
	return rows, err
}

func (r *orderRepository) Recent(ctx context.Context, accountID *uuid.UUID, limit int) ([]db_models.Order, error) {
	q := r.preloaded(ctx)
	if accountID != nil {
		q = q.Where("orders.account_id = ?", *accountID)
	}

	var orders []db_models.Order
	err := q.Order("orders.created_at DESC").Limit(limit).Find(&orders).Error
	return orders, err
}
