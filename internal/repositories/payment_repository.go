package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"storefront/internal/models/db_models"
)

type PaymentRepository interface {
	// CreateForOrder locks the order row, checks it is still pending with no
	// payment awaiting review, checks the transaction id, then inserts.
	CreateForOrder(ctx context.Context, payment *db_models.Payment) error
	CountPendingReview(ctx context.Context) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateForOrder(ctx context.Context, payment *db_models.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order db_models.Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "status").
			First(&order, "id = ?", payment.OrderID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrConditionFailed
			}
			return err
		}
		if order.Status != db_models.OrderPending {
			return ErrConditionFailed
		}

		var n int64
		err = tx.Model(&db_models.Payment{}).
			Where("order_id = ? AND status = ?", payment.OrderID, db_models.PaymentPending).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrPendingPaymentExists
		}

		err = tx.Model(&db_models.Payment{}).
			Where("payment_method_id = ? AND transaction_id = ? AND status <> ?",
				payment.PaymentMethodID, payment.TransactionID, db_models.PaymentRejected).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrTransactionIDTaken
		}

		err = tx.Create(payment).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTransactionIDTaken
		}
		return err
	})
}

// CountPendingReview counts pending orders that have a payment awaiting review.
func (r *paymentRepository) CountPendingReview(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Order{}).
		Where("status = ?", db_models.OrderPending).
		Where("EXISTS (SELECT 1 FROM payments p WHERE p.order_id = orders.id AND p.status = ? AND p.deleted_at IS NULL)", db_models.PaymentPending).
		Count(&n).Error
	return n, err
}
