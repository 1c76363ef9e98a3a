package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/roombook/internal/application"
	"github.com/example/roombook/internal/booking"
	"github.com/example/roombook/internal/persistence"
)

var (
	userCounter    uint64
	roomCounter    uint64
	bookingCounter uint64
	sessionCounter uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- User fixtures -----------------------------

// UserFixture represents a deterministic user record that can be materialised
// for application or persistence tests.
type UserFixture struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserOption configures the generated user fixture.
type UserOption func(*UserFixture)

// NewUserFixture returns a deterministic user fixture with optional overrides.
func NewUserFixture(opts ...UserOption) UserFixture {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := UserFixture{
		ID:           id,
		Email:        fmt.Sprintf("%s@example.com", id),
		DisplayName:  fmt.Sprintf("User %03d", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		IsAdmin:      false,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(f *UserFixture) {
		f.ID = id
	}
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(f *UserFixture) {
		f.Email = email
	}
}

// WithUserPasswordHash overrides the generated password hash.
func WithUserPasswordHash(hash string) UserOption {
	return func(f *UserFixture) {
		f.PasswordHash = hash
	}
}

// WithUserAdmin sets the admin flag on the generated fixture.
func WithUserAdmin(isAdmin bool) UserOption {
	return func(f *UserFixture) {
		f.IsAdmin = isAdmin
	}
}

// Application returns the fixture as an application.User value.
func (f UserFixture) Application() application.User {
	return application.User{
		ID:          f.ID,
		Email:       f.Email,
		DisplayName: f.DisplayName,
		IsAdmin:     f.IsAdmin,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Credentials returns the fixture as application.UserCredentials.
func (f UserFixture) Credentials() application.UserCredentials {
	return application.UserCredentials{
		User:         f.Application(),
		PasswordHash: f.PasswordHash,
	}
}

// Principal returns an application.Principal derived from the fixture.
func (f UserFixture) Principal() application.Principal {
	return application.Principal{UserID: f.ID, IsAdmin: f.IsAdmin}
}

// Persistence returns the fixture as a persistence.User value.
func (f UserFixture) Persistence() persistence.User {
	return persistence.User{
		ID:           f.ID,
		Email:        f.Email,
		DisplayName:  f.DisplayName,
		PasswordHash: f.PasswordHash,
		IsAdmin:      f.IsAdmin,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// ----------------------------- Room fixtures -----------------------------

// RoomFixture represents a deterministic meeting room record.
type RoomFixture struct {
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

// RoomOption configures the generated room fixture.
type RoomOption func(*RoomFixture)

// NewRoomFixture returns a deterministic room fixture with optional overrides.
func NewRoomFixture(opts ...RoomOption) RoomFixture {
	idx := atomic.AddUint64(&roomCounter, 1)
	id := fmt.Sprintf("room-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := RoomFixture{
		ID:             id,
		Name:           fmt.Sprintf("Room %03d", idx),
		Location:       "Main Office",
		Capacity:       int(4 + idx%4),
		IsActive:       true,
		WorkHoursStart: "08:00",
		WorkHoursEnd:   "18:00",
		CreatedAt:      created,
		UpdatedAt:      created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithRoomID overrides the generated room ID.
func WithRoomID(id string) RoomOption {
	return func(f *RoomFixture) {
		f.ID = id
	}
}

// WithRoomName overrides the generated room name.
func WithRoomName(name string) RoomOption {
	return func(f *RoomFixture) {
		f.Name = name
	}
}

// WithRoomCapacity overrides the generated capacity.
func WithRoomCapacity(capacity int) RoomOption {
	return func(f *RoomFixture) {
		f.Capacity = capacity
	}
}

// WithRoomActive sets the active flag on the fixture.
func WithRoomActive(active bool) RoomOption {
	return func(f *RoomFixture) {
		f.IsActive = active
	}
}

// WithRoomWorkHours sets the daily work-hours window.
func WithRoomWorkHours(start, end string) RoomOption {
	return func(f *RoomFixture) {
		f.WorkHoursStart = start
		f.WorkHoursEnd = end
	}
}

// WithRoomAmenities sets the amenity list on the fixture.
func WithRoomAmenities(amenities ...string) RoomOption {
	return func(f *RoomFixture) {
		f.Amenities = append([]string(nil), amenities...)
	}
}

// Application returns the fixture as an application.Room value.
func (f RoomFixture) Application() application.Room {
	return application.Room{
		ID:             f.ID,
		Name:           f.Name,
		Location:       f.Location,
		Capacity:       f.Capacity,
		IsActive:       f.IsActive,
		WorkHoursStart: f.WorkHoursStart,
		WorkHoursEnd:   f.WorkHoursEnd,
		Amenities:      append([]string(nil), f.Amenities...),
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Room value.
func (f RoomFixture) Persistence() persistence.Room {
	return persistence.Room{
		ID:             f.ID,
		Name:           f.Name,
		Location:       f.Location,
		Capacity:       f.Capacity,
		IsActive:       f.IsActive,
		WorkHoursStart: f.WorkHoursStart,
		WorkHoursEnd:   f.WorkHoursEnd,
		Amenities:      append([]string(nil), f.Amenities...),
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

// Input returns the fixture as an application.RoomInput.
func (f RoomFixture) Input() application.RoomInput {
	return application.RoomInput{
		Name:           f.Name,
		Location:       f.Location,
		Capacity:       f.Capacity,
		IsActive:       f.IsActive,
		WorkHoursStart: f.WorkHoursStart,
		WorkHoursEnd:   f.WorkHoursEnd,
		Amenities:      append([]string(nil), f.Amenities...),
	}
}

// ---------------------------- Booking fixtures ----------------------------

// BookingFixture represents a deterministic booking record.
type BookingFixture struct {
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

// BookingOption configures the generated booking fixture.
type BookingOption func(*BookingFixture)

// NewBookingFixture returns a deterministic booking fixture with optional overrides.
func NewBookingFixture(opts ...BookingOption) BookingFixture {
	idx := atomic.AddUint64(&bookingCounter, 1)
	id := fmt.Sprintf("booking-%03d", idx)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := BookingFixture{
		ID:        id,
		RoomID:    fmt.Sprintf("room-%03d", idx),
		Title:     fmt.Sprintf("Booking %03d", idx),
		Start:     start,
		End:       start.Add(time.Hour),
		Status:    booking.StatusPending,
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithBookingID overrides the booking ID.
func WithBookingID(id string) BookingOption {
	return func(f *BookingFixture) {
		f.ID = id
	}
}

// WithBookingRoomID sets the associated room ID.
func WithBookingRoomID(roomID string) BookingOption {
	return func(f *BookingFixture) {
		f.RoomID = roomID
	}
}

// WithBookingTitle overrides the title.
func WithBookingTitle(title string) BookingOption {
	return func(f *BookingFixture) {
		f.Title = title
	}
}

// WithBookingOrganizer sets the organizer on the fixture.
func WithBookingOrganizer(organizer string) BookingOption {
	return func(f *BookingFixture) {
		value := organizer
		f.Organizer = &value
	}
}

// WithBookingSlot sets the start and end times.
func WithBookingSlot(start, end time.Time) BookingOption {
	return func(f *BookingFixture) {
		f.Start = start
		f.End = end
	}
}

// WithBookingStatus sets the approval status.
func WithBookingStatus(status booking.Status) BookingOption {
	return func(f *BookingFixture) {
		f.Status = status
	}
}

// Application returns the fixture as an application.Booking value.
func (f BookingFixture) Application() application.Booking {
	return application.Booking{
		ID:        f.ID,
		RoomID:    f.RoomID,
		Title:     f.Title,
		Organizer: copyStringPtr(f.Organizer),
		Start:     f.Start,
		End:       f.End,
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Booking value.
func (f BookingFixture) Persistence() persistence.Booking {
	return persistence.Booking{
		ID:        f.ID,
		RoomID:    f.RoomID,
		Title:     f.Title,
		Organizer: copyStringPtr(f.Organizer),
		Start:     f.Start,
		End:       f.End,
		Status:    string(f.Status),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Input returns the fixture as an application.BookingInput.
func (f BookingFixture) Input() application.BookingInput {
	return application.BookingInput{
		RoomID:    f.RoomID,
		Title:     f.Title,
		Organizer: copyStringPtr(f.Organizer),
		Start:     f.Start,
		End:       f.End,
	}
}

// ----------------------------- Session fixtures -------------------------

// SessionFixture represents a deterministic session record.
type SessionFixture struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// SessionOption configures the generated session fixture.
type SessionOption func(*SessionFixture)

// NewSessionFixture returns a deterministic session fixture with optional overrides.
func NewSessionFixture(opts ...SessionOption) SessionFixture {
	idx := atomic.AddUint64(&sessionCounter, 1)
	fixture := SessionFixture{
		ID:        fmt.Sprintf("session-%03d", idx),
		UserID:    fmt.Sprintf("user-%03d", idx),
		Token:     fmt.Sprintf("token-%03d", idx),
		ExpiresAt: referenceTime.Add(24 * time.Hour),
		CreatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSessionUserID sets the user ID.
func WithSessionUserID(id string) SessionOption {
	return func(f *SessionFixture) {
		f.UserID = id
	}
}

// WithSessionToken overrides the token value.
func WithSessionToken(token string) SessionOption {
	return func(f *SessionFixture) {
		f.Token = token
	}
}

// WithSessionExpiresAt sets the expiration timestamp.
func WithSessionExpiresAt(t time.Time) SessionOption {
	return func(f *SessionFixture) {
		f.ExpiresAt = t
	}
}

// WithSessionRevokedAt sets the optional revoked timestamp.
func WithSessionRevokedAt(t time.Time) SessionOption {
	return func(f *SessionFixture) {
		revoked := t
		f.RevokedAt = &revoked
	}
}

// Application returns the fixture as an application.Session value.
func (f SessionFixture) Application() application.Session {
	return application.Session{
		ID:        f.ID,
		UserID:    f.UserID,
		Token:     f.Token,
		ExpiresAt: f.ExpiresAt,
		CreatedAt: f.CreatedAt,
		RevokedAt: copyTimePtr(f.RevokedAt),
	}
}

// Persistence returns the fixture as a persistence.Session value.
func (f SessionFixture) Persistence() persistence.Session {
	return persistence.Session{
		ID:        f.ID,
		UserID:    f.UserID,
		Token:     f.Token,
		ExpiresAt: f.ExpiresAt,
		CreatedAt: f.CreatedAt,
		RevokedAt: copyTimePtr(f.RevokedAt),
	}
}

func copyStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}

func copyTimePtr(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
