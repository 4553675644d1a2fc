package store

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a conditional update matched zero rows
	// because someone else changed the row first. Clients refetch and retry.
	ErrConflict = errors.New("conflicting concurrent update")
)
