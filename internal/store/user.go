// Package store provides database access methods for all CallGuard
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"callguard/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, external_id, email, name, picture, created_at, updated_at`

func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := scanner.Scan(
		&u.ID, &u.ExternalID, &u.Email, &u.Name, &u.Picture,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// UpsertByExternalID creates the local mirror of an identity-provider
// account, or refreshes its profile fields if it already exists.
func (s *UserStore) UpsertByExternalID(externalID, email, name, picture string) (*models.User, error) {
	row := s.db.QueryRow(`
		INSERT INTO users (external_id, email, name, picture)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_id)
		DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name,
		              picture = EXCLUDED.picture, updated_at = now()
		RETURNING `+userColumns,
		externalID, email, name, picture,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}
