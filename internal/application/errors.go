package application

import "errors"

var (
	// ErrUnauthorized is returned when the acting principal lacks permission for an operation.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a create collides with an existing record.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrConflict is returned when a booking request collides with an occupied time slot.
	ErrConflict = errors.New("application: conflict")
	// ErrInvalidCredentials is returned when authentication input does not match a known account.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrAccountDisabled is returned when the account exists but may not sign in.
	ErrAccountDisabled = errors.New("application: account disabled")
	// ErrSessionExpired is returned when a session token is past its expiry.
	ErrSessionExpired = errors.New("application: session expired")
	// ErrSessionRevoked is returned when a session token was explicitly revoked.
	ErrSessionRevoked = errors.New("application: session revoked")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// merge copies entries from another validation error into the receiver.
func (v *ValidationError) merge(other *ValidationError) {
	if other == nil || len(other.FieldErrors) == 0 {
		return
	}
	for field, msg := range other.FieldErrors {
		v.add(field, msg)
	}
}

// ConflictError reports that a requested time slot overlaps existing blocking
// bookings. It matches ErrConflict under errors.Is.
type ConflictError struct {
	Message   string
	Conflicts []Booking
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e == nil || e.Message == "" {
		return "time slot conflict"
	}
	return e.Message
}

// Is lets errors.Is match the ErrConflict sentinel.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
