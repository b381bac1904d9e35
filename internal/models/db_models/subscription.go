package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionStatus string

const (
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusCanceled SubscriptionStatus = "canceled"
	SubStatusExpired  SubscriptionStatus = "expired"
)

type Subscription struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`
	PlanID    uuid.UUID `gorm:"type:uuid;index;not null"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Status     SubscriptionStatus `gorm:"type:varchar(16);index;not null"`
	StartsAt   int64              `gorm:"not null"`
	EndsAt     int64              `gorm:"not null"`
	CanceledAt *int64

	Metadata datatypes.JSON `gorm:"type:jsonb"`

	Plan Plan `gorm:"foreignKey:PlanID"`
}
