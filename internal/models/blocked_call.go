// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// BlockedCall is one entry in the call history. CategoryID/CategoryName
// are resolved at write time: an explicit category wins, otherwise a
// registry match on the phone number, otherwise the unknown fallback.
type BlockedCall struct {
	ID           string     `json:"id"`
	PhoneNumber  string     `json:"phone_number"`
	CategoryID   *string    `json:"category_id"`
	CategoryName string     `json:"category_name"`
	BlockedAt    time.Time  `json:"blocked_at"`
	WasBlocked   bool       `json:"was_blocked"`
	Notes        string     `json:"notes"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
}
