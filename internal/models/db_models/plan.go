package db_models

import (
	"github.com/lib/pq"
)

type BillingPeriod string

const (
	PeriodMonth    BillingPeriod = "month"
	PeriodYear     BillingPeriod = "year"
	PeriodLifetime BillingPeriod = "lifetime"
)

type Plan struct {
	BaseModel
	Name        string         `gorm:"size:120;not null"`
	Description string         `gorm:"type:text"`
	PriceMinor  int64          `gorm:"not null"` // 999 = $9.99
	Currency    string         `gorm:"size:3;not null"`
	Interval    BillingPeriod  `gorm:"column:billing_interval;type:varchar(16);not null"`
	Features    pq.StringArray `gorm:"type:text[]"`
	ImageURL    string
	IsActive    bool `gorm:"index"`
	IsPopular   bool
}
