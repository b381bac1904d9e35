package db_models

import (
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountFlat       DiscountType = "flat"
	DiscountPercentage DiscountType = "percentage"
)

type Coupon struct {
	BaseModel
	Code          string          `gorm:"size:64;uniqueIndex;not null"`
	DiscountType  DiscountType    `gorm:"type:varchar(16);not null"`
	DiscountValue decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	MaxUses       int             `gorm:"not null"` // 0 = unlimited
	UsageCount    int             `gorm:"not null"`
	ExpiresAt     *int64
	IsActive      bool
}
