package models

import (
	"time"

	"github.com/google/uuid"
)

// AnonymousSettingsID is the fixed primary key of the sentinel settings
// row shared by all unauthenticated callers.
const AnonymousSettingsID = "anonymous"

// UserSettings holds per-user preferences. One row per user plus the
// anonymous sentinel row; rows are created lazily with defaults on first
// read and upserted on update, never deleted.
type UserSettings struct {
	ID                   string     `json:"id"`
	UserID               *uuid.UUID `json:"user_id,omitempty"`
	BlockUnknownNumbers  bool       `json:"block_unknown_numbers"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	AutoBlockSpam        bool       `json:"auto_block_spam"`
	IntegrationEnabled   bool       `json:"integration_enabled"`
	IntegrationAPIKey    *string    `json:"integration_api_key,omitempty"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// DefaultSettings returns a settings record with the stock defaults for
// the given owner (nil for the anonymous sentinel).
func DefaultSettings(owner *uuid.UUID) *UserSettings {
	s := &UserSettings{
		ID:                   AnonymousSettingsID,
		BlockUnknownNumbers:  false,
		NotificationsEnabled: true,
		AutoBlockSpam:        true,
	}
	if owner != nil {
		s.ID = uuid.NewString()
		s.UserID = owner
	}
	return s
}

// UserSettingsUpdate carries a partial settings change. Nil fields are
// left untouched by Apply.
type UserSettingsUpdate struct {
	BlockUnknownNumbers  *bool   `json:"block_unknown_numbers"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	AutoBlockSpam        *bool   `json:"auto_block_spam"`
	IntegrationEnabled   *bool   `json:"integration_enabled"`
	IntegrationAPIKey    *string `json:"integration_api_key"`
}

// Apply copies the non-nil fields of the update onto s and refreshes
// UpdatedAt.
func (s *UserSettings) Apply(u *UserSettingsUpdate) {
	if u.BlockUnknownNumbers != nil {
		s.BlockUnknownNumbers = *u.BlockUnknownNumbers
	}
	if u.NotificationsEnabled != nil {
		s.NotificationsEnabled = *u.NotificationsEnabled
	}
	if u.AutoBlockSpam != nil {
		s.AutoBlockSpam = *u.AutoBlockSpam
	}
	if u.IntegrationEnabled != nil {
		s.IntegrationEnabled = *u.IntegrationEnabled
	}
	if u.IntegrationAPIKey != nil {
		s.IntegrationAPIKey = u.IntegrationAPIKey
	}
	s.UpdatedAt = time.Now().UTC()
}
