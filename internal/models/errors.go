package models

import "errors"

// Sentinel errors shared by the stores and handlers. Handlers map these
// to HTTP statuses; the stores never wrap them with additional context so
// errors.Is checks stay cheap at the call sites.
var (
	// ErrNotFound is returned when an operation targets an ID that does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrImmutable is returned when a caller tries to delete a default
	// (non-custom) category.
	ErrImmutable = errors.New("default categories cannot be deleted")

	// ErrForbidden is returned when a caller tries to mutate a record
	// owned by a different user.
	ErrForbidden = errors.New("record owned by another user")
)
