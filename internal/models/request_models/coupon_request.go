package request_models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ValidateCouponRequest struct {
	Code   string `json:"code" binding:"required,max=64"`
	PlanID string `json:"plan_id" binding:"required,uuid"`
}

type CreateCouponRequest struct {
	Code          string          `json:"code" binding:"required,min=3,max=64,printascii"`
	DiscountType  string          `json:"discount_type" binding:"required,discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MaxUses       int             `json:"max_uses" binding:"min=0"`
	ExpiresAt     *time.Time      `json:"expires_at"`
	IsActive      *bool           `json:"is_active"`
}

type UpdateCouponRequest struct {
	DiscountType  *string          `json:"discount_type" binding:"omitempty,discount_type"`
	DiscountValue *decimal.Decimal `json:"discount_value"`
	MaxUses       *int             `json:"max_uses" binding:"omitempty,min=0"`
	ExpiresAt     *time.Time       `json:"expires_at"`
	ClearExpiry   bool             `json:"clear_expiry"`
	IsActive      *bool            `json:"is_active"`
}
