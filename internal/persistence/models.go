package persistence

import "time"

// User represents an account that can sign in and, when flagged as admin,
// manage rooms and booking approvals.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Room represents a meeting room catalog entry.
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

// Booking represents a reserved time slot stored for a room.
type Booking struct {
	ID        string
	RoomID    string
	Title     string
	Organizer *string
	Start     time.Time
	End       time.Time
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session represents an authentication session persisted for a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}
