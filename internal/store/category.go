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

// CategoryStore manages spam categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, description, color, icon, is_custom, user_id, created_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Description, &c.Color,
		&c.Icon, &c.IsCustom, &c.UserID, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListVisible returns the categories the given scope may see: every
// ownerless category, plus the scoped user's own. Insertion order; the
// limit is a generous bound, not a pagination contract.
func (s *CategoryStore) ListVisible(sc scope.Scope) ([]models.Category, error) {
	cond, args := sc.Predicate("user_id", 1)
	rows, err := s.db.Query(`
		SELECT `+categoryColumns+`
		FROM categories
		WHERE `+cond+`
		ORDER BY created_at, id
		LIMIT 100
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// ResolveName returns the snapshot name for a category ID, falling back
// to the unknown marker when the ID does not resolve.
func (s *CategoryStore) ResolveName(id string) (string, error) {
	var name string
	err := s.db.QueryRow(`SELECT name FROM categories WHERE id = $1`, id).Scan(&name)
	if err == sql.ErrNoRows {
		return models.UnknownCategoryName, nil
	}
	if err != nil {
		return models.UnknownCategoryName, fmt.Errorf("resolve category name: %w", err)
	}
	return name, nil
}

// Presentation defaults applied when a custom category omits them.
const (
	defaultCategoryColor = "#FF5722"
	defaultCategoryIcon  = "phone-off"
)

// Create inserts a custom category and returns it. is_custom is always
// forced true; owner is nil for anonymous callers, which makes the
// category globally visible. Empty color and icon fall back to the
// presentation defaults.
func (s *CategoryStore) Create(name, description, color, icon string, owner *uuid.UUID) (*models.Category, error) {
	if color == "" {
		color = defaultCategoryColor
	}
	if icon == "" {
		icon = defaultCategoryIcon
	}
	row := s.db.QueryRow(`
		INSERT INTO categories (id, name, description, color, icon, is_custom, user_id)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)
		RETURNING `+categoryColumns,
		uuid.NewString(), name, description, color, icon, owner,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Delete removes a custom category on behalf of the given caller.
// Returns ErrNotFound for unknown IDs, ErrImmutable for default
// categories, and ErrForbidden when the category belongs to a different
// user.
func (s *CategoryStore) Delete(id string, owner *uuid.UUID) error {
	c, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return models.ErrNotFound
	}
	if err := c.DeletableBy(owner); err != nil {
		return err
	}

	if _, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
