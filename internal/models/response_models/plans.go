package response_models

import (
	"time"

	"github.com/google/uuid"
)

type PlanResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceMinor  int64     `json:"price_minor"` // 999 = $9.99
	Currency    string    `json:"currency"`
	Interval    string    `json:"interval"`
	Features    []string  `json:"features"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsPopular   bool      `json:"is_popular"`
	CreatedAt   time.Time `json:"created_at"`
}

type PaymentMethodResponse struct {
	ID            uuid.UUID `json:"id"`
	MethodName    string    `json:"method_name"`
	AccountNumber string    `json:"account_number"`
	AccountName   string    `json:"account_name,omitempty"`
	Instructions  string    `json:"instructions,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
