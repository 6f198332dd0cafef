// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"callguard/internal/models"
	"callguard/internal/scope"
)

// DefaultHistoryLimit caps call-history listings when the caller does not
// supply a limit.
const DefaultHistoryLimit = 50

// BlockedCallStore manages the blocked-call history.
type BlockedCallStore struct {
	db *sql.DB
}

// NewBlockedCallStore returns a new BlockedCallStore.
func NewBlockedCallStore(db *sql.DB) *BlockedCallStore {
	return &BlockedCallStore{db: db}
}

const blockedCallColumns = `id, phone_number, category_id, category_name, blocked_at, was_blocked, notes, user_id`

func scanBlockedCall(scanner interface{ Scan(...any) error }) (*models.BlockedCall, error) {
	var c models.BlockedCall
	err := scanner.Scan(
		&c.ID, &c.PhoneNumber, &c.CategoryID, &c.CategoryName,
		&c.BlockedAt, &c.WasBlocked, &c.Notes, &c.UserID,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns the scope's most recent calls, newest first, capped at
// limit (DefaultHistoryLimit when limit <= 0).
func (s *BlockedCallStore) List(sc scope.Scope, limit int) ([]models.BlockedCall, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	cond, args := sc.Predicate("user_id", 1)
	args = append(args, limit)
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT %s FROM blocked_calls
		WHERE %s
		ORDER BY blocked_at DESC
		LIMIT $%d
	`, blockedCallColumns, cond, len(args)), args...)
	if err != nil {
		return nil, fmt.Errorf("list blocked calls: %w", err)
	}
	defer rows.Close()

	var items []models.BlockedCall
	for rows.Next() {
		c, err := scanBlockedCall(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blocked call: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Create logs a blocked call. The category reference and name must be
// resolved by the caller (explicit category, registry match, or the
// unknown fallback) before insertion.
func (s *BlockedCallStore) Create(phoneNumber string, categoryID *string, categoryName, notes string, owner *uuid.UUID) (*models.BlockedCall, error) {
	row := s.db.QueryRow(`
		INSERT INTO blocked_calls (id, phone_number, category_id, category_name, notes, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+blockedCallColumns,
		uuid.NewString(), phoneNumber, categoryID, categoryName, notes, owner,
	)
	c, err := scanBlockedCall(row)
	if err != nil {
		return nil, fmt.Errorf("create blocked call: %w", err)
	}
	return c, nil
}

// Delete removes one history entry by ID. Returns ErrNotFound when the
// ID does not exist.
func (s *BlockedCallStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM blocked_calls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blocked call: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete blocked call rows: %w", err)
	}
	if deleted == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Clear bulk-deletes history: the caller's own records when owner is set,
// otherwise all anonymous records. Returns the number of deleted rows.
func (s *BlockedCallStore) Clear(owner *uuid.UUID) (int64, error) {
	var res sql.Result
	var err error
	if owner == nil {
		res, err = s.db.Exec(`DELETE FROM blocked_calls WHERE user_id IS NULL`)
	} else {
		res, err = s.db.Exec(`DELETE FROM blocked_calls WHERE user_id = $1`, *owner)
	}
	if err != nil {
		return 0, fmt.Errorf("clear blocked calls: %w", err)
	}
	return res.RowsAffected()
}
