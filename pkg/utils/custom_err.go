package utils

import "errors"

var (
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
	ErrInvalidInput    = errors.New("invalid input")
	ErrForbidden       = errors.New("forbidden")

	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOtp         = errors.New("invalid or expired otp")
	ErrCannotDemoteSelf   = errors.New("admins cannot change their own role")

	ErrPlanNotFound = errors.New("plan not found")
	ErrPlanInactive = errors.New("plan is not available")
	ErrPlanInUse    = errors.New("plan is referenced by orders")

	ErrCouponNotFound     = errors.New("coupon not found")
	ErrInvalidCoupon      = errors.New("invalid coupon")
	ErrCouponExpired      = errors.New("coupon expired")
	ErrCouponExhausted    = errors.New("coupon usage limit reached")
	ErrCouponCodeConflict = errors.New("coupon code already exists")

	ErrPaymentMethodNotFound = errors.New("payment method not found")

	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrOrderConflict           = errors.New("order was modified concurrently")
	ErrOrderNotPayable         = errors.New("order is not awaiting payment")
	ErrOrderNotCancelable      = errors.New("order can no longer be cancelled")

	ErrPaymentAlreadySubmitted = errors.New("a payment is already awaiting review")
	ErrDuplicateTransaction    = errors.New("transaction id already submitted")
	ErrUnsupportedFile         = errors.New("unsupported file type")
	ErrFileTooLarge            = errors.New("file too large")
	ErrAssetNotFound           = errors.New("asset not found")
)
