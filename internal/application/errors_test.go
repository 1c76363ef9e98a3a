package application

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"nil":                 {err: nil, want: ""},
		"unauthorized":        {err: ErrUnauthorized, want: "unauthorized"},
		"not found":           {err: ErrNotFound, want: "not_found"},
		"wrapped not found":   {err: fmt.Errorf("outer: %w", ErrNotFound), want: "not_found"},
		"conflict sentinel":   {err: ErrConflict, want: "conflict"},
		"conflict error":      {err: &ConflictError{Message: "Time slot is already booked"}, want: "conflict"},
		"invalid credentials": {err: ErrInvalidCredentials, want: "invalid_credentials"},
		"session expired":     {err: ErrSessionExpired, want: "session_expired"},
		"validation":          {err: &ValidationError{FieldErrors: map[string]string{"name": "name is required"}}, want: "validation"},
		"unexpected":          {err: errors.New("boom"), want: "unexpected"},
	}

	for name, tc := range cases {
		if got := ErrorKind(tc.err); got != tc.want {
			t.Errorf("%s: got %q want %q", name, got, tc.want)
		}
	}
}

func TestConflictErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create booking: %w", &ConflictError{Message: "Time slot is already booked"})
	if !errors.Is(err, ErrConflict) {
		t.Fatal("ConflictError must match ErrConflict")
	}

	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatal("expected to unwrap ConflictError")
	}
	if cErr.Error() != "Time slot is already booked" {
		t.Errorf("unexpected message: %q", cErr.Error())
	}
}

func TestValidationErrorMerge(t *testing.T) {
	base := &ValidationError{}
	base.add("name", "name is required")

	other := &ValidationError{}
	other.add("capacity", "capacity must be between 1 and 1000")
	base.merge(other)

	if len(base.FieldErrors) != 2 {
		t.Fatalf("expected merged errors, got %v", base.FieldErrors)
	}
	if !base.HasErrors() {
		t.Fatal("expected HasErrors to report true")
	}
}
