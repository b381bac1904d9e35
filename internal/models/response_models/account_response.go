package response_models

import (
	"time"

	"github.com/google/uuid"
)

type AccountLoginResponse struct {
	Token                 string          `json:"token"`
	ExpiresAt             time.Time       `json:"expires_at"`
	HasActiveSubscription bool            `json:"has_active_subscription"`
	Account               AccountResponse `json:"account"`
}

type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	WhatsApp  string    `json:"whatsapp,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
