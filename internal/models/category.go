// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies spam numbers and blocked calls. Default categories
// are seeded with fixed slug IDs, have no owner and is_custom=false;
// custom categories get generated IDs and may be attributed to a user.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	Icon        string     `json:"icon"`
	IsCustom    bool       `json:"is_custom"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UnknownCategoryName is the fallback snapshot name used when a category
// reference cannot be resolved at write time.
const UnknownCategoryName = "Inconnu"

// DeletableBy reports whether a caller identified by owner (nil for
// anonymous) may delete this category. Default categories are never
// deletable; ownerless custom categories are deletable by anyone.
func (c *Category) DeletableBy(owner *uuid.UUID) error {
	if !c.IsCustom {
		return ErrImmutable
	}
	if c.UserID == nil {
		return nil
	}
	if owner == nil || *c.UserID != *owner {
		return ErrForbidden
	}
	return nil
}
