package response_models

import (
	"time"

	"github.com/google/uuid"
)

type OrderCustomer struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	WhatsApp string    `json:"whatsapp,omitempty"`
}

type OrderPlan struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Interval   string    `json:"interval"`
	PriceMinor int64     `json:"price_minor"`
}

type PaymentResponse struct {
	ID                uuid.UUID `json:"id"`
	OrderID           uuid.UUID `json:"order_id"`
	PaymentMethodID   uuid.UUID `json:"payment_method_id"`
	PaymentMethodName string    `json:"payment_method_name,omitempty"`
	TransactionID     string    `json:"transaction_id"`
	ScreenshotURL     string    `json:"screenshot_url"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

type OrderResponse struct {
	ID               uuid.UUID         `json:"id"`
	Status           string            `json:"status"`
	Stage            string            `json:"stage"`
	Plan             OrderPlan         `json:"plan"`
	CouponCode       string            `json:"coupon_code,omitempty"`
	SubtotalMinor    int64             `json:"subtotal_minor"`
	DiscountMinor    int64             `json:"discount_minor"`
	TotalAmountMinor int64             `json:"total_amount_minor"`
	Currency         string            `json:"currency"`
	ReviewNote       string            `json:"review_note,omitempty"`
	ReviewedAt       *time.Time        `json:"reviewed_at,omitempty"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	Customer         *OrderCustomer    `json:"customer,omitempty"`
	Payments         []PaymentResponse `json:"payments"`
}
