package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a record with the same unique key exists.
	ErrDuplicate = errors.New("persistence: duplicate")
	// ErrConflict is returned when a write would violate the non-overlap
	// guarantee for blocking bookings of a room.
	ErrConflict = errors.New("persistence: conflicting booking")
	// ErrConstraintViolation is returned when stored data would violate a
	// schema-level check such as start < end.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
)
