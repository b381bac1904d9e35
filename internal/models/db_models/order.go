package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderApproved  OrderStatus = "approved"
	OrderRejected  OrderStatus = "rejected"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	BaseModel
	AccountID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	PlanID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	CouponID   *uuid.UUID `gorm:"type:uuid;index"`
	CouponCode string     `gorm:"size:64"`

	SubtotalMinor    int64  `gorm:"not null"`
	DiscountMinor    int64  `gorm:"not null"`
	TotalAmountMinor int64  `gorm:"not null"`
	Currency         string `gorm:"size:3;not null"`

	Status OrderStatus `gorm:"type:varchar(16);index;not null"`

	// Plan as priced at checkout.
	PlanSnapshot datatypes.JSON `gorm:"type:jsonb"`

	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewNote  string     `gorm:"type:text"`
	ReviewedAt  *int64
	CompletedAt *int64 `gorm:"index"`

	Account  Account   `gorm:"foreignKey:AccountID"`
	Plan     Plan      `gorm:"foreignKey:PlanID"`
	Payments []Payment `gorm:"foreignKey:OrderID"`
}
