// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scope models record visibility for a caller: either the global
// (ownerless) records only, or the global records plus those owned by one
// user. Scopes are built exclusively by the session middleware and passed
// into every store operation that filters by visibility.
package scope

import (
	"fmt"

	"github.com/google/uuid"
)

// Scope is a closed two-variant visibility filter. The zero value is the
// global-only scope.
type Scope struct {
	owner *uuid.UUID
}

// Global returns the scope that sees ownerless records only.
func Global() Scope {
	return Scope{}
}

// ForUser returns the scope that sees ownerless records plus records
// owned by the given user.
func ForUser(id uuid.UUID) Scope {
	return Scope{owner: &id}
}

// Owner returns the scoped user's ID, or false for the global scope.
func (s Scope) Owner() (uuid.UUID, bool) {
	if s.owner == nil {
		return uuid.Nil, false
	}
	return *s.owner, true
}

// OwnerRef returns a pointer to the scoped user's ID, or nil for the
// global scope. Convenient for writing owner columns.
func (s Scope) OwnerRef() *uuid.UUID {
	if s.owner == nil {
		return nil
	}
	id := *s.owner
	return &id
}

// Predicate renders the scope as a SQL condition on the given owner
// column. argn is the 1-based placeholder index to use for the user ID;
// the returned args slice is empty for the global scope.
func (s Scope) Predicate(column string, argn int) (string, []any) {
	if s.owner == nil {
		return fmt.Sprintf("%s IS NULL", column), nil
	}
	return fmt.Sprintf("(%s IS NULL OR %s = $%d)", column, column, argn), []any{*s.owner}
}
