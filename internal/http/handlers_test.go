package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/roombook/internal/application"
	"github.com/example/roombook/internal/availability"
	"github.com/example/roombook/internal/booking"
)

var handlerNow = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

type authServiceStub struct {
	result    application.AuthenticateResult
	authErr   error
	revoked   []string
	revokeErr error
}

func (s *authServiceStub) Authenticate(ctx context.Context, params application.AuthenticateParams) (application.AuthenticateResult, error) {
	if s.authErr != nil {
		return application.AuthenticateResult{}, s.authErr
	}
	return s.result, nil
}

func (s *authServiceStub) RevokeSession(ctx context.Context, token string) error {
	if s.revokeErr != nil {
		return s.revokeErr
	}
	s.revoked = append(s.revoked, token)
	return nil
}

type roomServiceStub struct {
	room       application.Room
	rooms      []application.Room
	withStatus []application.RoomWithStatus
	status     application.RoomStatus
	err        error
	deletedID  string
	lastParams any
}

func (s *roomServiceStub) CreateRoom(ctx context.Context, params application.CreateRoomParams) (application.Room, error) {
	s.lastParams = params
	return s.room, s.err
}

func (s *roomServiceStub) UpdateRoom(ctx context.Context, params application.UpdateRoomParams) (application.Room, error) {
	s.lastParams = params
	return s.room, s.err
}

func (s *roomServiceStub) DeleteRoom(ctx context.Context, principal application.Principal, roomID string) error {
	s.deletedID = roomID
	return s.err
}

func (s *roomServiceStub) GetRoom(ctx context.Context, roomID string) (application.Room, error) {
	return s.room, s.err
}

func (s *roomServiceStub) ListRooms(ctx context.Context, principal application.Principal) ([]application.Room, error) {
	return s.rooms, s.err
}

func (s *roomServiceStub) ListRoomsWithStatus(ctx context.Context, principal application.Principal) ([]application.RoomWithStatus, error) {
	return s.withStatus, s.err
}

func (s *roomServiceStub) GetRoomStatus(ctx context.Context, roomID string) (application.RoomStatus, error) {
	return s.status, s.err
}

type bookingServiceStub struct {
	booking    application.Booking
	bookings   []application.Booking
	err        error
	deletedID  string
	listRoomID string
	lastParams any
	decisions  []string
}

func (s *bookingServiceStub) CreateBooking(ctx context.Context, params application.CreateBookingParams) (application.Booking, error) {
	s.lastParams = params
	return s.booking, s.err
}

func (s *bookingServiceStub) UpdateBooking(ctx context.Context, params application.UpdateBookingParams) (application.Booking, error) {
	s.lastParams = params
	return s.booking, s.err
}

func (s *bookingServiceStub) ApproveBooking(ctx context.Context, principal application.Principal, bookingID string) (application.Booking, error) {
	s.decisions = append(s.decisions, "approve:"+bookingID)
	return s.booking, s.err
}

func (s *bookingServiceStub) DeclineBooking(ctx context.Context, principal application.Principal, bookingID string) (application.Booking, error) {
	s.decisions = append(s.decisions, "decline:"+bookingID)
	return s.booking, s.err
}

func (s *bookingServiceStub) GetBooking(ctx context.Context, bookingID string) (application.Booking, error) {
	return s.booking, s.err
}

func (s *bookingServiceStub) ListBookings(ctx context.Context, roomID string) ([]application.Booking, error) {
	s.listRoomID = roomID
	return s.bookings, s.err
}

func (s *bookingServiceStub) DeleteBooking(ctx context.Context, principal application.Principal, bookingID string) error {
	s.deletedID = bookingID
	return s.err
}

func sampleBooking() application.Booking {
	organizer := "alice@example.com"
	return application.Booking{
		ID:        "booking-1",
		RoomID:    "room-1",
		Title:     "Standup",
		Organizer: &organizer,
		Start:     handlerNow,
		End:       handlerNow.Add(30 * time.Minute),
		Status:    booking.StatusPending,
		CreatedAt: handlerNow,
		UpdatedAt: handlerNow,
	}
}

func sampleRoom() application.Room {
	return application.Room{
		ID:             "room-1",
		Name:           "Atrium",
		Location:       "Floor 2",
		Capacity:       8,
		IsActive:       true,
		WorkHoursStart: "08:00",
		WorkHoursEnd:   "18:00",
		Amenities:      []string{"projector"},
		CreatedAt:      handlerNow,
		UpdatedAt:      handlerNow,
	}
}

func withPrincipal(req *http.Request, principal application.Principal) *http.Request {
	return req.WithContext(ContextWithPrincipal(req.Context(), principal))
}

func withRoomID(req *http.Request, id string) *http.Request {
	return req.WithContext(ContextWithRoomID(req.Context(), id))
}

func withBookingID(req *http.Request, id string) *http.Request {
	return req.WithContext(ContextWithBookingID(req.Context(), id))
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(recorder.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func TestAuthHandlers(t *testing.T) {
	t.Parallel()

	t.Run("session creation issues token via cookie and header", func(t *testing.T) {
		t.Parallel()

		service := &authServiceStub{result: application.AuthenticateResult{
			User: application.User{ID: "user-1", Email: "alice@example.com", IsAdmin: true},
			Session: application.Session{
				Token:     "token-abc",
				ExpiresAt: handlerNow.Add(24 * time.Hour),
			},
		}}
		handler := NewAuthHandler(service, nil)

		req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"email":" Alice@Example.com ","password":"secret"}`))
		recorder := httptest.NewRecorder()
		handler.CreateSession(recorder, req)

		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", recorder.Code)
		}
		if got := recorder.Header().Get("X-Session-Token"); got != "token-abc" {
			t.Fatalf("expected session token header, got %q", got)
		}

		var foundCookie bool
		for _, cookie := range recorder.Result().Cookies() {
			if cookie.Name == "session_token" && cookie.Value == "token-abc" {
				foundCookie = true
			}
		}
		if !foundCookie {
			t.Fatal("expected session_token cookie to be set")
		}

		var resp loginResponse
		decodeBody(t, recorder, &resp)
		if resp.Token != "token-abc" {
			t.Fatalf("expected token in body, got %q", resp.Token)
		}
		if resp.Principal.UserID != "user-1" || !resp.Principal.IsAdmin {
			t.Fatalf("unexpected principal payload: %+v", resp.Principal)
		}
	})

	t.Run("invalid credentials answer 401 with error code", func(t *testing.T) {
		t.Parallel()

		service := &authServiceStub{authErr: application.ErrInvalidCredentials}
		handler := NewAuthHandler(service, nil)

		req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`))
		recorder := httptest.NewRecorder()
		handler.CreateSession(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
		var resp errorResponse
		decodeBody(t, recorder, &resp)
		if resp.ErrorCode != "AUTH_INVALID_CREDENTIALS" {
			t.Fatalf("expected AUTH_INVALID_CREDENTIALS, got %q", resp.ErrorCode)
		}
	})

	t.Run("session revocation clears the cookie", func(t *testing.T) {
		t.Parallel()

		service := &authServiceStub{}
		handler := NewAuthHandler(service, nil)

		req := httptest.NewRequest(http.MethodDelete, "/sessions/current", nil)
		req.Header.Set("Authorization", "Bearer token-abc")
		recorder := httptest.NewRecorder()
		handler.DeleteCurrentSession(recorder, req)

		if recorder.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", recorder.Code)
		}
		if len(service.revoked) != 1 || service.revoked[0] != "token-abc" {
			t.Fatalf("expected token to be revoked, got %v", service.revoked)
		}

		var cleared bool
		for _, cookie := range recorder.Result().Cookies() {
			if cookie.Name == "session_token" && cookie.MaxAge < 0 {
				cleared = true
			}
		}
		if !cleared {
			t.Fatal("expected session cookie to be cleared")
		}
	})

	t.Run("revocation without a token answers 401", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(&authServiceStub{}, nil)
		req := httptest.NewRequest(http.MethodDelete, "/sessions/current", nil)
		recorder := httptest.NewRecorder()
		handler.DeleteCurrentSession(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
	})
}

func TestRoomHandlers(t *testing.T) {
	t.Parallel()

	admin := application.Principal{UserID: "admin-1", IsAdmin: true}
	member := application.Principal{UserID: "user-1"}

	t.Run("create returns the stored room", func(t *testing.T) {
		t.Parallel()

		service := &roomServiceStub{room: sampleRoom()}
		handler := NewRoomHandler(service, nil)

		body := `{"name":"Atrium","location":"Floor 2","capacity":8,"work_hours_start":"08:00","work_hours_end":"18:00","amenities":["projector"]}`
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/rooms", strings.NewReader(body)), admin)
		recorder := httptest.NewRecorder()
		handler.Create(recorder, req)

		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", recorder.Code)
		}
		var resp roomResponse
		decodeBody(t, recorder, &resp)
		if resp.Room.ID != "room-1" || resp.Room.Name != "Atrium" {
			t.Fatalf("unexpected room payload: %+v", resp.Room)
		}

		params, ok := service.lastParams.(application.CreateRoomParams)
		if !ok {
			t.Fatalf("expected CreateRoomParams, got %T", service.lastParams)
		}
		if params.Principal != admin {
			t.Fatalf("expected admin principal, got %+v", params.Principal)
		}
		if !params.Input.IsActive {
			t.Fatal("expected rooms to default to active")
		}
	})

	t.Run("forbidden mutation maps to 403", func(t *testing.T) {
		t.Parallel()

		service := &roomServiceStub{err: application.ErrUnauthorized}
		handler := NewRoomHandler(service, nil)

		body := `{"name":"Atrium","location":"Floor 2","capacity":8,"work_hours_start":"08:00","work_hours_end":"18:00"}`
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/rooms", strings.NewReader(body)), member)
		recorder := httptest.NewRecorder()
		handler.Create(recorder, req)

		if recorder.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", recorder.Code)
		}
		var resp errorResponse
		decodeBody(t, recorder, &resp)
		if resp.ErrorCode != "AUTH_FORBIDDEN" {
			t.Fatalf("expected AUTH_FORBIDDEN, got %q", resp.ErrorCode)
		}
	})

	t.Run("validation failures answer 422 with field errors", func(t *testing.T) {
		t.Parallel()

		vErr := &application.ValidationError{FieldErrors: map[string]string{"capacity": "capacity must be between 1 and 1000"}}
		service := &roomServiceStub{err: vErr}
		handler := NewRoomHandler(service, nil)

		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/rooms", strings.NewReader(`{"name":"Atrium"}`)), admin)
		recorder := httptest.NewRecorder()
		handler.Create(recorder, req)

		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", recorder.Code)
		}
		var resp errorResponse
		decodeBody(t, recorder, &resp)
		if resp.Errors["capacity"] != "capacity must be between 1 and 1000" {
			t.Fatalf("expected capacity field error, got %v", resp.Errors)
		}
	})

	t.Run("list without a principal answers 401", func(t *testing.T) {
		t.Parallel()

		handler := NewRoomHandler(&roomServiceStub{}, nil)
		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		recorder := httptest.NewRecorder()
		handler.List(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("list with include=status attaches availability", func(t *testing.T) {
		t.Parallel()

		service := &roomServiceStub{withStatus: []application.RoomWithStatus{{
			Room: sampleRoom(),
			Status: application.RoomStatus{
				RoomID:     "room-1",
				Status:     availability.StatusAvailable,
				Message:    "Available",
				ResolvedAt: handlerNow,
			},
		}}}
		handler := NewRoomHandler(service, nil)

		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/rooms?include=status", nil), member)
		recorder := httptest.NewRecorder()
		handler.List(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		var resp listRoomsWithStatusResponse
		decodeBody(t, recorder, &resp)
		if len(resp.Rooms) != 1 {
			t.Fatalf("expected one room, got %d", len(resp.Rooms))
		}
		if resp.Rooms[0].Status.Message != "Available" {
			t.Fatalf("expected availability message, got %q", resp.Rooms[0].Status.Message)
		}
	})

	t.Run("status endpoint returns message and next change", func(t *testing.T) {
		t.Parallel()

		next := handlerNow.Add(30 * time.Minute)
		service := &roomServiceStub{status: application.RoomStatus{
			RoomID:     "room-1",
			Status:     availability.StatusBusy,
			Message:    "Busy until 10:30 AM",
			NextChange: &next,
			ResolvedAt: handlerNow,
		}}
		handler := NewRoomHandler(service, nil)

		req := withRoomID(httptest.NewRequest(http.MethodGet, "/rooms/room-1/status", nil), "room-1")
		recorder := httptest.NewRecorder()
		handler.Status(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		var resp roomStatusResponse
		decodeBody(t, recorder, &resp)
		if resp.Status.Message != "Busy until 10:30 AM" {
			t.Fatalf("unexpected message: %q", resp.Status.Message)
		}
		if resp.Status.NextChange == nil {
			t.Fatal("expected next_change to be present")
		}
	})

	t.Run("unknown room maps to 404", func(t *testing.T) {
		t.Parallel()

		service := &roomServiceStub{err: application.ErrNotFound}
		handler := NewRoomHandler(service, nil)

		req := withRoomID(httptest.NewRequest(http.MethodGet, "/rooms/nope", nil), "nope")
		recorder := httptest.NewRecorder()
		handler.Get(recorder, req)

		if recorder.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", recorder.Code)
		}
	})

	t.Run("delete passes the room id through", func(t *testing.T) {
		t.Parallel()

		service := &roomServiceStub{}
		handler := NewRoomHandler(service, nil)

		req := withPrincipal(withRoomID(httptest.NewRequest(http.MethodDelete, "/rooms/room-1", nil), "room-1"), admin)
		recorder := httptest.NewRecorder()
		handler.Delete(recorder, req)

		if recorder.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", recorder.Code)
		}
		if service.deletedID != "room-1" {
			t.Fatalf("expected room-1 deleted, got %q", service.deletedID)
		}
	})
}

func TestBookingHandlers(t *testing.T) {
	t.Parallel()

	member := application.Principal{UserID: "user-1"}
	admin := application.Principal{UserID: "admin-1", IsAdmin: true}

	t.Run("create returns the pending booking", func(t *testing.T) {
		t.Parallel()

		service := &bookingServiceStub{booking: sampleBooking()}
		handler := NewBookingHandler(service, nil)

		body := `{"room_id":"room-1","title":"Standup","start":"2024-03-04T10:00:00Z","end":"2024-03-04T10:30:00Z"}`
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body)), member)
		recorder := httptest.NewRecorder()
		handler.Create(recorder, req)

		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", recorder.Code)
		}
		var resp bookingResponse
		decodeBody(t, recorder, &resp)
		if resp.Booking.Status != "pending" {
			t.Fatalf("expected pending status, got %q", resp.Booking.Status)
		}

		params, ok := service.lastParams.(application.CreateBookingParams)
		if !ok {
			t.Fatalf("expected CreateBookingParams, got %T", service.lastParams)
		}
		if !params.Input.Start.Equal(handlerNow) {
			t.Fatalf("expected parsed start %v, got %v", handlerNow, params.Input.Start)
		}
	})

	t.Run("malformed timestamps answer 422 before the service runs", func(t *testing.T) {
		t.Parallel()

		service := &bookingServiceStub{}
		handler := NewBookingHandler(service, nil)

		body := `{"room_id":"room-1","title":"Standup","start":"not-a-time","end":"2024-03-04T10:30:00Z"}`
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body)), member)
		recorder := httptest.NewRecorder()
		handler.Create(recorder, req)

		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", recorder.Code)
		}
		if service.lastParams != nil {
			t.Fatal("expected service not to be called for malformed timestamps")
		}
		var resp errorResponse
		decodeBody(t, recorder, &resp)
		if resp.Errors["start"] == "" {
			t.Fatalf("expected start field error, got %v", resp.Errors)
		}
	})

	t.Run("conflicts answer 409 with the overlapping bookings", func(t *testing.T) {
		t.Parallel()

		conflict := sampleBooking()
		conflict.ID = "booking-2"
		service := &bookingServiceStub{err: &application.ConflictError{
			Message:   "Time slot is already booked",
			Conflicts: []application.Booking{conflict},
		}}
		handler := NewBookingHandler(service, nil)

		body := `{"room_id":"room-1","title":"Standup","start":"2024-03-04T10:00:00Z","end":"2024-03-04T10:30:00Z"}`
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body)), member)
		recorder := httptest.NewRecorder()
		handler.Create(recorder, req)

		if recorder.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", recorder.Code)
		}
		var resp errorResponse
		decodeBody(t, recorder, &resp)
		if resp.ErrorCode != "BOOKING_CONFLICT" {
			t.Fatalf("expected BOOKING_CONFLICT, got %q", resp.ErrorCode)
		}
		if resp.Message != "Time slot is already booked" {
			t.Fatalf("unexpected message: %q", resp.Message)
		}
		if len(resp.Conflicts) != 1 || resp.Conflicts[0].ID != "booking-2" {
			t.Fatalf("expected overlapping booking in payload, got %+v", resp.Conflicts)
		}
	})

	t.Run("list narrows by room_id query parameter", func(t *testing.T) {
		t.Parallel()

		service := &bookingServiceStub{bookings: []application.Booking{sampleBooking()}}
		handler := NewBookingHandler(service, nil)

		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/bookings?room_id=room-1", nil), member)
		recorder := httptest.NewRecorder()
		handler.List(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		if service.listRoomID != "room-1" {
			t.Fatalf("expected room filter to pass through, got %q", service.listRoomID)
		}
		var resp listBookingsResponse
		decodeBody(t, recorder, &resp)
		if len(resp.Bookings) != 1 {
			t.Fatalf("expected one booking, got %d", len(resp.Bookings))
		}
	})

	t.Run("update forwards only the provided fields", func(t *testing.T) {
		t.Parallel()

		service := &bookingServiceStub{booking: sampleBooking()}
		handler := NewBookingHandler(service, nil)

		req := withPrincipal(withBookingID(httptest.NewRequest(http.MethodPut, "/bookings/booking-1", strings.NewReader(`{"title":"Retro"}`)), "booking-1"), member)
		recorder := httptest.NewRecorder()
		handler.Update(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		params, ok := service.lastParams.(application.UpdateBookingParams)
		if !ok {
			t.Fatalf("expected UpdateBookingParams, got %T", service.lastParams)
		}
		if params.Patch.Title == nil || *params.Patch.Title != "Retro" {
			t.Fatalf("expected title patch, got %+v", params.Patch)
		}
		if params.Patch.Start != nil || params.Patch.End != nil || params.Patch.RoomID != nil {
			t.Fatalf("expected untouched fields to stay nil, got %+v", params.Patch)
		}
	})

	t.Run("approve and decline route to the decision methods", func(t *testing.T) {
		t.Parallel()

		approved := sampleBooking()
		approved.Status = booking.StatusApproved
		service := &bookingServiceStub{booking: approved}
		handler := NewBookingHandler(service, nil)

		req := withPrincipal(withBookingID(httptest.NewRequest(http.MethodPost, "/bookings/booking-1/approve", nil), "booking-1"), admin)
		recorder := httptest.NewRecorder()
		handler.Approve(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		var resp bookingResponse
		decodeBody(t, recorder, &resp)
		if resp.Booking.Status != "approved" {
			t.Fatalf("expected approved status, got %q", resp.Booking.Status)
		}

		req = withPrincipal(withBookingID(httptest.NewRequest(http.MethodPost, "/bookings/booking-1/decline", nil), "booking-1"), admin)
		recorder = httptest.NewRecorder()
		handler.Decline(recorder, req)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}

		want := []string{"approve:booking-1", "decline:booking-1"}
		if len(service.decisions) != len(want) || service.decisions[0] != want[0] || service.decisions[1] != want[1] {
			t.Fatalf("expected decisions %v, got %v", want, service.decisions)
		}
	})

	t.Run("decision by a non-admin maps to 403", func(t *testing.T) {
		t.Parallel()

		service := &bookingServiceStub{err: application.ErrUnauthorized}
		handler := NewBookingHandler(service, nil)

		req := withPrincipal(withBookingID(httptest.NewRequest(http.MethodPost, "/bookings/booking-1/approve", nil), "booking-1"), member)
		recorder := httptest.NewRecorder()
		handler.Approve(recorder, req)

		if recorder.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", recorder.Code)
		}
	})

	t.Run("invalid transition maps to 422", func(t *testing.T) {
		t.Parallel()

		vErr := &application.ValidationError{FieldErrors: map[string]string{"status": "cannot move a declined booking to approved"}}
		service := &bookingServiceStub{err: vErr}
		handler := NewBookingHandler(service, nil)

		req := withPrincipal(withBookingID(httptest.NewRequest(http.MethodPost, "/bookings/booking-1/approve", nil), "booking-1"), admin)
		recorder := httptest.NewRecorder()
		handler.Approve(recorder, req)

		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", recorder.Code)
		}
		var resp errorResponse
		decodeBody(t, recorder, &resp)
		if resp.Errors["status"] == "" {
			t.Fatalf("expected status field error, got %v", resp.Errors)
		}
	})

	t.Run("delete passes the booking id through", func(t *testing.T) {
		t.Parallel()

		service := &bookingServiceStub{}
		handler := NewBookingHandler(service, nil)

		req := withPrincipal(withBookingID(httptest.NewRequest(http.MethodDelete, "/bookings/booking-1", nil), "booking-1"), admin)
		recorder := httptest.NewRecorder()
		handler.Delete(recorder, req)

		if recorder.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", recorder.Code)
		}
		if service.deletedID != "booking-1" {
			t.Fatalf("expected booking-1 deleted, got %q", service.deletedID)
		}
	})
}
