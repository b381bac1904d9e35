package response_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MaxUses       int             `json:"max_uses"`
	UsageCount    int             `json:"usage_count"`
	ExpiresAt     *time.Time      `json:"expires_at"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CouponQuote is the price of a plan after applying a coupon, in minor units.
type CouponQuote struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	PlanID        uuid.UUID       `json:"plan_id"`
	Currency      string          `json:"currency"`
	SubtotalMinor int64           `json:"subtotal_minor"`
	DiscountMinor int64           `json:"discount_minor"`
	TotalMinor    int64           `json:"total_minor"`
}
