package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/roombook/internal/availability"
	"github.com/example/roombook/internal/booking"
	"github.com/example/roombook/internal/persistence"
	"github.com/example/roombook/internal/timewindow"
)

// RoomRepository captures the persistence operations needed by the service.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) (Room, error)
	GetRoom(ctx context.Context, id string) (Room, error)
	UpdateRoom(ctx context.Context, room Room) (Room, error)
	DeleteRoom(ctx context.Context, id string) error
	ListRooms(ctx context.Context) ([]Room, error)
}

// RoomBookingSource exposes the booking lookups status resolution needs.
type RoomBookingSource interface {
	ListBookingsForRoom(ctx context.Context, roomID string) ([]Booking, error)
}

// RoomService orchestrates validation, authorization, and status resolution
// for the room catalog.
type RoomService struct {
	rooms       RoomRepository
	bookings    RoomBookingSource
	cache       *StatusCache
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewRoomService constructs a room service with the provided dependencies.
func NewRoomService(rooms RoomRepository, bookings RoomBookingSource, idGenerator func() string, now func() time.Time) *RoomService {
	return NewRoomServiceWithLogger(rooms, bookings, nil, idGenerator, now, nil)
}

// NewRoomServiceWithLogger constructs a room service with a status cache and logger.
func NewRoomServiceWithLogger(rooms RoomRepository, bookings RoomBookingSource, cache *StatusCache, idGenerator func() string, now func() time.Time, logger *slog.Logger) *RoomService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &RoomService{
		rooms:       rooms,
		bookings:    bookings,
		cache:       cache,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// CreateRoom validates input and persists a new room for administrators.
func (s *RoomService) CreateRoom(ctx context.Context, params CreateRoomParams) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateRoom",
		"principal_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room created")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	vErr := validateRoomInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	room = Room{
		ID:             s.idGenerator(),
		Name:           strings.TrimSpace(params.Input.Name),
		Location:       strings.TrimSpace(params.Input.Location),
		Capacity:       params.Input.Capacity,
		IsActive:       params.Input.IsActive,
		WorkHoursStart: params.Input.WorkHoursStart,
		WorkHoursEnd:   params.Input.WorkHoursEnd,
		Amenities:      normalizeAmenities(params.Input.Amenities),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if s.rooms == nil {
		return
	}

	var persisted Room
	persisted, err = s.rooms.CreateRoom(ctx, room)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	room = persisted
	return
}

// UpdateRoom validates input and updates an existing room for administrators.
func (s *RoomService) UpdateRoom(ctx context.Context, params UpdateRoomParams) (room Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}
	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if s.rooms == nil {
		err = fmt.Errorf("room repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateRoom",
		"principal_id", params.Principal.UserID,
		"room_id", params.RoomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room updated")
	}()

	var existing Room
	existing, err = s.rooms.GetRoom(ctx, params.RoomID)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	vErr := validateRoomInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(params.Input.Name)
	updated.Location = strings.TrimSpace(params.Input.Location)
	updated.Capacity = params.Input.Capacity
	updated.IsActive = params.Input.IsActive
	updated.WorkHoursStart = params.Input.WorkHoursStart
	updated.WorkHoursEnd = params.Input.WorkHoursEnd
	updated.Amenities = normalizeAmenities(params.Input.Amenities)
	updated.UpdatedAt = s.now()

	room, err = s.rooms.UpdateRoom(ctx, updated)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	s.cache.Invalidate(ctx, room.ID)
	return
}

// DeleteRoom removes an existing room when requested by an administrator.
func (s *RoomService) DeleteRoom(ctx context.Context, principal Principal, roomID string) error {
	if s == nil {
		return fmt.Errorf("RoomService is nil")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	if s.rooms == nil {
		return fmt.Errorf("room repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteRoom",
		"principal_id", principal.UserID,
		"room_id", roomID,
	)

	if err := s.rooms.DeleteRoom(ctx, roomID); err != nil {
		err = mapRoomRepoError(err)
		logger.ErrorContext(ctx, "failed to delete room", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	s.cache.Invalidate(ctx, roomID)
	logger.InfoContext(ctx, "room deleted")
	return nil
}

// GetRoom returns a single catalog entry.
func (s *RoomService) GetRoom(ctx context.Context, roomID string) (Room, error) {
	if s == nil {
		return Room{}, fmt.Errorf("RoomService is nil")
	}
	if s.rooms == nil {
		return Room{}, fmt.Errorf("room repository not configured")
	}
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return Room{}, mapRoomRepoError(err)
	}
	return room, nil
}

// ListRooms returns the catalog of rooms for any authenticated user.
func (s *RoomService) ListRooms(ctx context.Context, principal Principal) (rooms []Room, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}
	if s.rooms == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListRooms",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list rooms", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(rooms)).InfoContext(ctx, "rooms listed")
	}()

	var raw []Room
	raw, err = s.rooms.ListRooms(ctx)
	if err != nil {
		return
	}

	rooms = make([]Room, len(raw))
	copy(rooms, raw)

	sort.Slice(rooms, func(i, j int) bool {
		if strings.EqualFold(rooms[i].Name, rooms[j].Name) {
			return rooms[i].ID < rooms[j].ID
		}
		return strings.ToLower(rooms[i].Name) < strings.ToLower(rooms[j].Name)
	})

	return
}

// GetRoomStatus resolves the live availability of a room at the current
// instant, consulting the status cache first.
func (s *RoomService) GetRoomStatus(ctx context.Context, roomID string) (status RoomStatus, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}
	if s.rooms == nil {
		err = fmt.Errorf("room repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "GetRoomStatus", "room_id", roomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to resolve room status", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("status", string(status.Status)).InfoContext(ctx, "room status resolved")
	}()

	if cached, ok := s.cache.Get(ctx, roomID); ok {
		status = cached
		return
	}

	var room Room
	room, err = s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	status, err = s.resolveStatus(ctx, room)
	if err != nil {
		return
	}

	s.cache.Store(ctx, status)
	return
}

// ListRoomsWithStatus pairs every catalog entry with its resolved status for
// dashboard listings.
func (s *RoomService) ListRoomsWithStatus(ctx context.Context, principal Principal) ([]RoomWithStatus, error) {
	rooms, err := s.ListRooms(ctx, principal)
	if err != nil {
		return nil, err
	}

	out := make([]RoomWithStatus, 0, len(rooms))
	for _, room := range rooms {
		status, err := s.resolveStatus(ctx, room)
		if err != nil {
			return nil, err
		}
		out = append(out, RoomWithStatus{Room: room, Status: status})
	}
	return out, nil
}

func (s *RoomService) resolveStatus(ctx context.Context, room Room) (RoomStatus, error) {
	now := s.now()

	var blocking []booking.Booking
	if s.bookings != nil {
		raw, err := s.bookings.ListBookingsForRoom(ctx, room.ID)
		if err != nil {
			return RoomStatus{}, mapRoomRepoError(err)
		}
		for _, b := range raw {
			if !b.Status.Blocking() {
				continue
			}
			blocking = append(blocking, booking.Booking{
				ID:     b.ID,
				RoomID: b.RoomID,
				Start:  b.Start,
				End:    b.End,
				Status: b.Status,
			})
		}
	}

	info, err := availability.Resolve(availability.Room{
		Active: room.IsActive,
		WorkHours: availability.Window{
			Start: room.WorkHoursStart,
			End:   room.WorkHoursEnd,
		},
	}, blocking, now)
	if err != nil {
		return RoomStatus{}, fmt.Errorf("resolve status for room %s: %w", room.ID, err)
	}

	return RoomStatus{
		RoomID:     room.ID,
		Status:     info.Status,
		Message:    info.Message,
		NextChange: info.NextChange,
		ResolvedAt: now,
	}, nil
}

func validateRoomInput(input RoomInput) *ValidationError {
	vErr := &ValidationError{}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		vErr.add("name", "name is required")
	} else if len(name) > 50 {
		vErr.add("name", "name must be 50 characters or fewer")
	}
	if strings.TrimSpace(input.Location) == "" {
		vErr.add("location", "location is required")
	}
	if input.Capacity <= 0 || input.Capacity > 1000 {
		vErr.add("capacity", "capacity must be between 1 and 1000")
	}

	vErr.merge(validateWorkHours(input.WorkHoursStart, input.WorkHoursEnd))

	return vErr
}

func validateWorkHours(start, end string) *ValidationError {
	vErr := &ValidationError{}

	startMin, startErr := timewindow.ParseHHMM(start)
	if startErr != nil {
		vErr.add("work_hours_start", "must be a zero-padded HH:MM clock time")
	}
	endMin, endErr := timewindow.ParseHHMM(end)
	if endErr != nil {
		vErr.add("work_hours_end", "must be a zero-padded HH:MM clock time")
	}
	if startErr == nil && endErr == nil && startMin >= endMin {
		vErr.add("work_hours", "work hours start must be before end")
	}

	return vErr
}

func mapRoomRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("capacity", "capacity must be between 1 and 1000")
		return vErr
	}
	return err
}

func normalizeAmenities(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeOptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
