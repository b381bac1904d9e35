package db_models

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentRejected PaymentStatus = "rejected"
)

type Payment struct {
	BaseModel
	OrderID         uuid.UUID     `gorm:"type:uuid;index;not null"`
	PaymentMethodID uuid.UUID     `gorm:"type:uuid;index;not null"`
	TransactionID   string        `gorm:"size:128;index;not null"`
	ScreenshotKey   string        `gorm:"not null"`
	ScreenshotURL   string        `gorm:"not null"`
	Status          PaymentStatus `gorm:"type:varchar(16);index;not null"`

	PaymentMethod PaymentMethod `gorm:"foreignKey:PaymentMethodID"`
}
