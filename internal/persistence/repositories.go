package persistence

import (
	"context"
	"time"
)

// UserRepository exposes CRUD operations for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// RoomRepository exposes CRUD operations for rooms.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	UpdateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// BookingRepository stores booking entries for rooms.
type BookingRepository interface {
	CreateBooking(ctx context.Context, b Booking) error
	UpdateBooking(ctx context.Context, b Booking) error
	GetBooking(ctx context.Context, id string) (Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	ListBookingsForRoom(ctx context.Context, roomID string) ([]Booking, error)
	// FindOverlapping returns blocking bookings for roomID whose intervals
	// overlap [start, end), optionally excluding one booking by ID.
	FindOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) ([]Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
