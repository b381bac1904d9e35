package repositories

import "errors"

var (
	// ErrConditionFailed is returned when a guarded update matched no rows.
	ErrConditionFailed = errors.New("conditional update matched no rows")

	ErrPendingPaymentExists = errors.New("order already has a pending payment")
	ErrTransactionIDTaken   = errors.New("transaction id already used")
)

func likePattern(s string) string {
	return "%" + s + "%"
}
