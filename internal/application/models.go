package application

import (
	"time"

	"github.com/example/roombook/internal/availability"
	"github.com/example/roombook/internal/booking"
)

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Name           string
	Location       string
	Capacity       int
	IsActive       bool
	WorkHoursStart string
	WorkHoursEnd   string
	Amenities      []string
}

// Room represents a catalog entry for a bookable meeting room.
type Room struct {
	ID             string
	Name           string
	Location       string
	Capacity       int
	IsActive       bool
	WorkHoursStart string
	WorkHoursEnd   string
	Amenities      []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateRoomParams wraps the data required to create a room.
type CreateRoomParams struct {
	Principal Principal
	Input     RoomInput
}

// UpdateRoomParams wraps the data required to update a room.
type UpdateRoomParams struct {
	Principal Principal
	RoomID    string
	Input     RoomInput
}

// Booking represents a reserved time slot exposed by the application services.
type Booking struct {
	ID        string
	RoomID    string
	Title     string
	Organizer *string
	Start     time.Time
	End       time.Time
	Status    booking.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingInput captures caller provided booking fields.
type BookingInput struct {
	RoomID    string
	Title     string
	Organizer *string
	Start     time.Time
	End       time.Time
}

// CreateBookingParams wraps the data required to create a booking.
type CreateBookingParams struct {
	Principal Principal
	Input     BookingInput
}

// BookingPatch carries the fields of a booking update. Nil pointers leave the
// stored value unchanged; a pointer to an empty organizer clears it.
type BookingPatch struct {
	RoomID    *string
	Title     *string
	Organizer *string
	Start     *time.Time
	End       *time.Time
}

// UpdateBookingParams wraps the data required to update an existing booking.
type UpdateBookingParams struct {
	Principal Principal
	BookingID string
	Patch     BookingPatch
}

// RoomStatus is the resolved availability of a room at a single instant.
type RoomStatus struct {
	RoomID     string
	Status     availability.Status
	Message    string
	NextChange *time.Time
	ResolvedAt time.Time
}

// RoomWithStatus pairs a catalog entry with its resolved status for listings.
type RoomWithStatus struct {
	Room   Room
	Status RoomStatus
}

// User represents an account exposed by the application services.
type User struct {
	ID          string
	Email       string
	DisplayName string
	IsAdmin     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserCredentials models the authentication attributes persisted for a user.
type UserCredentials struct {
	User         User
	PasswordHash string
}

// Session represents an authenticated session issued to a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// AuthenticateParams captures the data required to authenticate a user.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult captures the outcome of a successful authentication attempt.
type AuthenticateResult struct {
	User    User
	Session Session
}
