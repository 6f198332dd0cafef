// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"callguard/internal/models"
)

// UserSettingsStore manages per-user preferences plus the shared
// anonymous sentinel row.
type UserSettingsStore struct {
	db *sql.DB
}

// NewUserSettingsStore returns a new UserSettingsStore.
func NewUserSettingsStore(db *sql.DB) *UserSettingsStore {
	return &UserSettingsStore{db: db}
}

const settingsColumns = `id, user_id, block_unknown_numbers, notifications_enabled, auto_block_spam, integration_enabled, integration_api_key, updated_at`

func scanSettings(scanner interface{ Scan(...any) error }) (*models.UserSettings, error) {
	var s models.UserSettings
	err := scanner.Scan(
		&s.ID, &s.UserID, &s.BlockUnknownNumbers, &s.NotificationsEnabled,
		&s.AutoBlockSpam, &s.IntegrationEnabled, &s.IntegrationAPIKey, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// find returns the settings row for the owner (nil = anonymous sentinel),
// or nil when none exists yet.
func (s *UserSettingsStore) find(owner *uuid.UUID) (*models.UserSettings, error) {
	var row *sql.Row
	if owner == nil {
		row = s.db.QueryRow(`SELECT `+settingsColumns+` FROM user_settings WHERE id = $1`, models.AnonymousSettingsID)
	} else {
		row = s.db.QueryRow(`SELECT `+settingsColumns+` FROM user_settings WHERE user_id = $1`, *owner)
	}
	res, err := scanSettings(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find settings: %w", err)
	}
	return res, nil
}

// GetOrCreate returns the owner's settings, lazily inserting the default
// record on first access.
func (s *UserSettingsStore) GetOrCreate(owner *uuid.UUID) (*models.UserSettings, error) {
	existing, err := s.find(owner)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	defaults := models.DefaultSettings(owner)
	row := s.db.QueryRow(`
		INSERT INTO user_settings (id, user_id, block_unknown_numbers, notifications_enabled, auto_block_spam, integration_enabled, integration_api_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		RETURNING `+settingsColumns,
		defaults.ID, defaults.UserID, defaults.BlockUnknownNumbers,
		defaults.NotificationsEnabled, defaults.AutoBlockSpam,
		defaults.IntegrationEnabled, defaults.IntegrationAPIKey,
	)
	created, err := scanSettings(row)
	if err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}
	return created, nil
}

// Update applies the non-nil fields of the partial update to the owner's
// settings, creating the record first if needed, and returns the result.
func (s *UserSettingsStore) Update(owner *uuid.UUID, upd *models.UserSettingsUpdate) (*models.UserSettings, error) {
	current, err := s.GetOrCreate(owner)
	if err != nil {
		return nil, err
	}

	current.Apply(upd)

	row := s.db.QueryRow(`
		UPDATE user_settings SET
			block_unknown_numbers = $1, notifications_enabled = $2,
			auto_block_spam = $3, integration_enabled = $4,
			integration_api_key = $5, updated_at = $6
		WHERE id = $7
		RETURNING `+settingsColumns,
		current.BlockUnknownNumbers, current.NotificationsEnabled,
		current.AutoBlockSpam, current.IntegrationEnabled,
		current.IntegrationAPIKey, current.UpdatedAt, current.ID,
	)
	updated, err := scanSettings(row)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return updated, nil
}
