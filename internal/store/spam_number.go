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

// SpamNumberStore manages the spam registry. The phone_number column
// carries a unique index, which is what makes Report safe against
// concurrent first reports of the same number.
type SpamNumberStore struct {
	db         *sql.DB
	categories *CategoryStore
}

// NewSpamNumberStore returns a new SpamNumberStore. The category store is
// used to snapshot category names at write time.
func NewSpamNumberStore(db *sql.DB, categories *CategoryStore) *SpamNumberStore {
	return &SpamNumberStore{db: db, categories: categories}
}

const spamColumns = `id, phone_number, category_id, category_name, source, reports_count, description, is_active, user_id, created_at, updated_at`

// scanSpamNumber scans a row into a SpamNumber struct.
func scanSpamNumber(scanner interface{ Scan(...any) error }) (*models.SpamNumber, error) {
	var n models.SpamNumber
	err := scanner.Scan(
		&n.ID, &n.PhoneNumber, &n.CategoryID, &n.CategoryName, &n.Source,
		&n.ReportsCount, &n.Description, &n.IsActive, &n.UserID,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListVisible returns active spam numbers visible to the scope, sorted by
// report count descending. categoryID, when non-empty, is an exact match;
// search, when non-empty, is a case-insensitive substring match on the
// phone number.
func (s *SpamNumberStore) ListVisible(sc scope.Scope, categoryID, search string) ([]models.SpamNumber, error) {
	cond, args := sc.Predicate("user_id", 1)
	query := `SELECT ` + spamColumns + ` FROM spam_numbers WHERE is_active = TRUE AND ` + cond

	if categoryID != "" {
		args = append(args, categoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if search != "" {
		args = append(args, search)
		query += fmt.Sprintf(" AND phone_number ILIKE '%%' || $%d || '%%'", len(args))
	}
	query += " ORDER BY reports_count DESC, id LIMIT 1000"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list spam numbers: %w", err)
	}
	defer rows.Close()

	var items []models.SpamNumber
	for rows.Next() {
		n, err := scanSpamNumber(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spam number: %w", err)
		}
		items = append(items, *n)
	}
	return items, rows.Err()
}

// Report applies the dedup-or-insert rule for a caller-reported number.
// Unknown numbers are inserted with reports_count=1, source 'user' and
// the caller as owner; known numbers get their counter incremented and
// updated_at refreshed while keeping the original category, description
// and owner. The upsert makes the two cases atomic even when two callers
// report a brand-new number at the same time.
func (s *SpamNumberStore) Report(phoneNumber, categoryID, description string, owner *uuid.UUID) (*models.SpamNumber, error) {
	categoryName, err := s.categories.ResolveName(categoryID)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		INSERT INTO spam_numbers (id, phone_number, category_id, category_name, source, reports_count, description, user_id)
		VALUES ($1, $2, $3, $4, 'user', 1, $5, $6)
		ON CONFLICT (phone_number)
		DO UPDATE SET reports_count = spam_numbers.reports_count + 1, updated_at = now()
		RETURNING `+spamColumns,
		uuid.NewString(), phoneNumber, categoryID, categoryName, description, owner,
	)
	n, err := scanSpamNumber(row)
	if err != nil {
		return nil, fmt.Errorf("report spam number: %w", err)
	}
	return n, nil
}

// InsertIfAbsent inserts a pre-built entry (used by the sync stub) and
// reports whether a row was actually created. Existing numbers are left
// completely untouched.
func (s *SpamNumberStore) InsertIfAbsent(n *models.SpamNumber) (bool, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	res, err := s.db.Exec(`
		INSERT INTO spam_numbers (id, phone_number, category_id, category_name, source, reports_count, description, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (phone_number) DO NOTHING
	`, n.ID, n.PhoneNumber, n.CategoryID, n.CategoryName, n.Source, n.ReportsCount, n.Description, n.UserID)
	if err != nil {
		return false, fmt.Errorf("insert spam number: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert spam number rows: %w", err)
	}
	return inserted > 0, nil
}

// FindActiveByPhone performs the global spam check lookup: exact phone
// number, active entries only, no scope filter. Returns nil when absent.
func (s *SpamNumberStore) FindActiveByPhone(phoneNumber string) (*models.SpamNumber, error) {
	row := s.db.QueryRow(`
		SELECT `+spamColumns+` FROM spam_numbers
		WHERE phone_number = $1 AND is_active = TRUE
	`, phoneNumber)
	n, err := scanSpamNumber(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find spam number by phone: %w", err)
	}
	return n, nil
}

// FindByID returns an entry by primary key, or nil when absent.
func (s *SpamNumberStore) FindByID(id string) (*models.SpamNumber, error) {
	row := s.db.QueryRow(`SELECT `+spamColumns+` FROM spam_numbers WHERE id = $1`, id)
	n, err := scanSpamNumber(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find spam number: %w", err)
	}
	return n, nil
}

// FindByPhone looks a number up regardless of its active flag. Used by
// the blocked-call category inference.
func (s *SpamNumberStore) FindByPhone(phoneNumber string) (*models.SpamNumber, error) {
	row := s.db.QueryRow(`SELECT `+spamColumns+` FROM spam_numbers WHERE phone_number = $1`, phoneNumber)
	n, err := scanSpamNumber(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find spam number by phone: %w", err)
	}
	return n, nil
}

// Remove deletes an entry by ID (unblock). No ownership check is
// applied: any caller may remove any entry. Returns ErrNotFound when
// the ID does not exist.
func (s *SpamNumberStore) Remove(id string) error {
	res, err := s.db.Exec(`DELETE FROM spam_numbers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove spam number: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove spam number rows: %w", err)
	}
	if deleted == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CountActive returns the number of active entries across all scopes.
func (s *SpamNumberStore) CountActive() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM spam_numbers WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count spam numbers: %w", err)
	}
	return count, nil
}
