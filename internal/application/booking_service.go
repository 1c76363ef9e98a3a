package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/roombook/internal/booking"
	"github.com/example/roombook/internal/metrics"
	"github.com/example/roombook/internal/persistence"
)

// BookingRepository captures the persistence operations needed by the service.
type BookingRepository interface {
	CreateBooking(ctx context.Context, b Booking) (Booking, error)
	GetBooking(ctx context.Context, id string) (Booking, error)
	UpdateBooking(ctx context.Context, b Booking) (Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	ListBookings(ctx context.Context) ([]Booking, error)
	ListBookingsForRoom(ctx context.Context, roomID string) ([]Booking, error)
	FindOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) ([]Booking, error)
}

// RoomCatalog exposes the room lookups the booking service needs.
type RoomCatalog interface {
	GetRoom(ctx context.Context, id string) (Room, error)
}

// BookingService orchestrates validation, conflict detection, and the approval
// flow for bookings.
type BookingService struct {
	bookings    BookingRepository
	rooms       RoomCatalog
	cache       *StatusCache
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(bookings BookingRepository, rooms RoomCatalog, idGenerator func() string, now func() time.Time) *BookingService {
	return NewBookingServiceWithLogger(bookings, rooms, nil, idGenerator, now, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a status cache and logger.
func NewBookingServiceWithLogger(bookings BookingRepository, rooms RoomCatalog, cache *StatusCache, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BookingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		bookings:    bookings,
		rooms:       rooms,
		cache:       cache,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// CreateBooking validates input, rejects occupied slots, and persists a new
// pending booking.
func (s *BookingService) CreateBooking(ctx context.Context, params CreateBookingParams) (result Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	input := params.Input
	logger := s.loggerWith(ctx, "CreateBooking",
		"principal_id", params.Principal.UserID,
		"room_id", input.RoomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", result.ID).InfoContext(ctx, "booking created")
	}()

	vErr := validateBookingCore(input.RoomID, input.Title, input.Start, input.End)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if err = s.ensureRoomBookable(ctx, input.RoomID); err != nil {
		return
	}

	if err = s.ensureSlotFree(ctx, input.RoomID, input.Start, input.End, ""); err != nil {
		return
	}

	now := s.now()
	candidate := Booking{
		ID:        s.idGenerator(),
		RoomID:    input.RoomID,
		Title:     strings.TrimSpace(input.Title),
		Organizer: normalizeOptionalString(input.Organizer),
		Start:     input.Start,
		End:       input.End,
		Status:    booking.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err = s.bookings.CreateBooking(ctx, candidate)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	metrics.IncBookingCreated(string(result.Status))
	s.cache.Invalidate(ctx, result.RoomID)
	return
}

// UpdateBooking merges the patch over the stored booking, revalidates it, and
// persists the result. Fields absent from the patch keep their stored values.
func (s *BookingService) UpdateBooking(ctx context.Context, params UpdateBookingParams) (result Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateBooking",
		"principal_id", params.Principal.UserID,
		"booking_id", params.BookingID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", result.RoomID).InfoContext(ctx, "booking updated")
	}()

	var existing Booking
	existing, err = s.bookings.GetBooking(ctx, params.BookingID)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	updated := applyBookingPatch(existing, params.Patch)
	vErr := validateBookingCore(updated.RoomID, updated.Title, updated.Start, updated.End)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if err = s.ensureRoomBookable(ctx, updated.RoomID); err != nil {
		return
	}

	if err = s.ensureSlotFree(ctx, updated.RoomID, updated.Start, updated.End, updated.ID); err != nil {
		return
	}

	updated.Title = strings.TrimSpace(updated.Title)
	updated.UpdatedAt = s.now()

	result, err = s.bookings.UpdateBooking(ctx, updated)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	s.cache.Invalidate(ctx, result.RoomID)
	if existing.RoomID != result.RoomID {
		s.cache.Invalidate(ctx, existing.RoomID)
	}
	return
}

// ApproveBooking moves a pending booking to approved. Approving an already
// approved booking is a no-op; a declined booking cannot be approved.
func (s *BookingService) ApproveBooking(ctx context.Context, principal Principal, bookingID string) (Booking, error) {
	return s.decide(ctx, principal, bookingID, booking.StatusApproved)
}

// DeclineBooking moves a pending booking to declined. Declining an already
// declined booking is a no-op; an approved booking cannot be declined.
func (s *BookingService) DeclineBooking(ctx context.Context, principal Principal, bookingID string) (Booking, error) {
	return s.decide(ctx, principal, bookingID, booking.StatusDeclined)
}

func (s *BookingService) decide(ctx context.Context, principal Principal, bookingID string, next booking.Status) (result Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "DecideBooking",
		"principal_id", principal.UserID,
		"booking_id", bookingID,
		"decision", string(next),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to decide booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("status", string(result.Status)).InfoContext(ctx, "booking decided")
	}()

	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	var existing Booking
	existing, err = s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	if !existing.Status.CanTransitionTo(next) {
		vErr := &ValidationError{}
		vErr.add("status", fmt.Sprintf("cannot move a %s booking to %s", existing.Status, next))
		err = vErr
		return
	}

	if existing.Status == next {
		result = existing
		return
	}

	updated := existing
	updated.Status = next
	updated.UpdatedAt = s.now()

	result, err = s.bookings.UpdateBooking(ctx, updated)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	metrics.IncBookingDecision(string(next))
	s.cache.Invalidate(ctx, result.RoomID)
	return
}

// GetBooking returns a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (Booking, error) {
	if s == nil {
		return Booking{}, fmt.Errorf("BookingService is nil")
	}
	if s.bookings == nil {
		return Booking{}, fmt.Errorf("booking repository not configured")
	}
	b, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return Booking{}, mapBookingRepoError(err)
	}
	return b, nil
}

// ListBookings returns every booking ordered by start time, then ID.
func (s *BookingService) ListBookings(ctx context.Context, roomID string) (bookings []Booking, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if s.bookings == nil {
		return nil, nil
	}

	var raw []Booking
	if roomID != "" {
		raw, err = s.bookings.ListBookingsForRoom(ctx, roomID)
	} else {
		raw, err = s.bookings.ListBookings(ctx)
	}
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	bookings = make([]Booking, len(raw))
	copy(bookings, raw)
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Start.Equal(bookings[j].Start) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].Start.Before(bookings[j].Start)
	})
	return
}

// DeleteBooking removes a booking when requested by an administrator.
func (s *BookingService) DeleteBooking(ctx context.Context, principal Principal, bookingID string) error {
	if s == nil {
		return fmt.Errorf("BookingService is nil")
	}
	if s.bookings == nil {
		return fmt.Errorf("booking repository not configured")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "DeleteBooking",
		"principal_id", principal.UserID,
		"booking_id", bookingID,
	)

	existing, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		err = mapBookingRepoError(err)
		logger.ErrorContext(ctx, "failed to delete booking", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if err := s.bookings.DeleteBooking(ctx, bookingID); err != nil {
		err = mapBookingRepoError(err)
		logger.ErrorContext(ctx, "failed to delete booking", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	metrics.IncBookingDeleted()
	s.cache.Invalidate(ctx, existing.RoomID)
	logger.InfoContext(ctx, "booking deleted")
	return nil
}

func (s *BookingService) ensureRoomBookable(ctx context.Context, roomID string) error {
	if s.rooms == nil {
		return nil
	}
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		if isNotFoundError(err) {
			return ErrNotFound
		}
		return err
	}
	if !room.IsActive {
		vErr := &ValidationError{}
		vErr.add("room_id", "Room is not active")
		return vErr
	}
	return nil
}

func (s *BookingService) ensureSlotFree(ctx context.Context, roomID string, start, end time.Time, excludeID string) error {
	overlapping, err := s.bookings.FindOverlapping(ctx, roomID, start, end, excludeID)
	if err != nil {
		return mapBookingRepoError(err)
	}
	if len(overlapping) == 0 {
		return nil
	}
	metrics.IncConflictRejection()
	return &ConflictError{Message: "Time slot is already booked", Conflicts: overlapping}
}

func validateBookingCore(roomID, title string, start, end time.Time) *ValidationError {
	vErr := &ValidationError{}

	if roomID == "" || strings.TrimSpace(title) == "" || start.IsZero() || end.IsZero() {
		vErr.add("booking", "Room ID, title, start, and end are required")
		return vErr
	}
	if !end.After(start) {
		vErr.add("time", "End time must be after start time")
	}
	return vErr
}

func applyBookingPatch(existing Booking, patch BookingPatch) Booking {
	updated := existing
	if patch.RoomID != nil {
		updated.RoomID = *patch.RoomID
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) != "" {
		// A blank title falls back to the stored one; only the organizer
		// field treats present-but-empty as a clear.
		updated.Title = *patch.Title
	}
	if patch.Organizer != nil {
		updated.Organizer = normalizeOptionalString(patch.Organizer)
	}
	if patch.Start != nil {
		updated.Start = *patch.Start
	}
	if patch.End != nil {
		updated.End = *patch.End
	}
	return updated
}

func mapBookingRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrConflict) {
		return &ConflictError{Message: "Time slot is already booked"}
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("time", "End time must be after start time")
		return vErr
	}
	return err
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound)
}
