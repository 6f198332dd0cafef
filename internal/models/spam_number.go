// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Source records how a spam number entry originated.
type Source string

const (
	// SourceDatabase marks entries seeded from the built-in dataset.
	SourceDatabase Source = "database"
	// SourceUser marks entries reported by a caller.
	SourceUser Source = "user"
	// SourceSync marks entries produced by the sync stub.
	SourceSync Source = "sync"
)

// SpamNumber is one entry in the spam registry. The phone number is a
// natural key with a global uniqueness constraint — reporting a known
// number increments ReportsCount instead of creating a second row.
// CategoryName is a snapshot resolved at write time; it is not kept in
// sync if the category is later renamed.
type SpamNumber struct {
	ID           string     `json:"id"`
	PhoneNumber  string     `json:"phone_number"`
	CategoryID   string     `json:"category_id"`
	CategoryName string     `json:"category_name"`
	Source       Source     `json:"source"`
	ReportsCount int        `json:"reports_count"`
	Description  string     `json:"description"`
	IsActive     bool       `json:"is_active"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CheckResult is the response of a single-number spam check. When the
// number is unknown or inactive only IsSpam is populated.
type CheckResult struct {
	IsSpam       bool   `json:"is_spam"`
	Category     string `json:"category,omitempty"`
	ReportsCount int    `json:"reports_count,omitempty"`
	Description  string `json:"description,omitempty"`
	Source       Source `json:"source,omitempty"`
}
