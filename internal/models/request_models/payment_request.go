package request_models

type CreateOrderRequest struct {
	PlanID     string `json:"plan_id" binding:"required,uuid"`
	CouponCode string `json:"coupon_code" binding:"omitempty,max=64"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,order_status"`
	Note   string `json:"note" binding:"omitempty,max=500"`
}

type OrderFilter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// SubmitPaymentForm is bound from multipart form fields; the screenshot
// travels as a separate file part.
type SubmitPaymentForm struct {
	PaymentMethodID string `form:"payment_method_id" binding:"required,uuid"`
	TransactionID   string `form:"transaction_id" binding:"required,max=128"`
}

type CreatePaymentMethodRequest struct {
	MethodName    string `json:"method_name" binding:"required,max=80"`
	AccountNumber string `json:"account_number" binding:"required,max=80"`
	AccountName   string `json:"account_name" binding:"omitempty,max=120"`
	Instructions  string `json:"instructions"`
	IsActive      *bool  `json:"is_active"`
}

type UpdatePaymentMethodRequest struct {
	MethodName    *string `json:"method_name" binding:"omitempty,max=80"`
	AccountNumber *string `json:"account_number" binding:"omitempty,max=80"`
	AccountName   *string `json:"account_name" binding:"omitempty,max=120"`
	Instructions  *string `json:"instructions"`
	IsActive      *bool   `json:"is_active"`
}
