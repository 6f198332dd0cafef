package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a local account mirrored from the external identity provider.
// ExternalID is the provider's stable subject; email, name and picture
// are refreshed on every session exchange.
type User struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"-"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Picture    string    `json:"picture"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
