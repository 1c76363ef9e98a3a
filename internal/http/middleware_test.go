package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/roombook/internal/application"
)

type fakeSessionValidator struct {
	principal application.Principal
	err       error
}

func (f fakeSessionValidator) ValidateSession(ctx context.Context, token string) (application.Principal, error) {
	return f.principal, f.err
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	t.Run("rejects requests without a token", func(t *testing.T) {
		t.Parallel()

		handler := RequireSession(fakeSessionValidator{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not run without a token")
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/rooms", nil))

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("rejects expired and revoked sessions", func(t *testing.T) {
		t.Parallel()

		for _, cause := range []error{
			application.ErrSessionExpired,
			application.ErrSessionRevoked,
			application.ErrUnauthorized,
		} {
			handler := RequireSession(fakeSessionValidator{err: cause}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler should not run for invalid sessions")
			}))

			req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
			req.Header.Set("Authorization", "Bearer stale-token")
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			if recorder.Code != http.StatusUnauthorized {
				t.Fatalf("cause %v: expected 401, got %d", cause, recorder.Code)
			}
		}
	})

	t.Run("converts repository failures into 500", func(t *testing.T) {
		t.Parallel()

		handler := RequireSession(fakeSessionValidator{err: errors.New("connection reset")}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not run on lookup failure")
		}))

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "some-token"})
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", recorder.Code)
		}
	})

	t.Run("attaches the principal to the request context", func(t *testing.T) {
		t.Parallel()

		principal := application.Principal{UserID: "user-123", IsAdmin: true}
		captured := make(chan application.Principal, 1)

		handler := RequireSession(fakeSessionValidator{principal: principal}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				t.Error("expected principal in request context")
			}
			captured <- p
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "valid-token"})
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		if got := <-captured; got != principal {
			t.Fatalf("expected principal %+v, got %+v", principal, got)
		}

		select {
		default:
		case <-captured:
			t.Fatal("handler ran more than once")
		}
	})
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	t.Run("answers 429 once the burst is exhausted", func(t *testing.T) {
		t.Parallel()

		handler := RateLimit(1, 2, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/rooms", nil))
			codes = append(codes, recorder.Code)
		}

		if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
			t.Fatalf("expected the burst to pass, got %v", codes)
		}
		if codes[2] != http.StatusTooManyRequests {
			t.Fatalf("expected 429 after the burst, got %v", codes)
		}
	})

	t.Run("non-positive rate disables the limiter", func(t *testing.T) {
		t.Parallel()

		handler := RateLimit(0, 0, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		for i := 0; i < 10; i++ {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/rooms", nil))
			if recorder.Code != http.StatusOK {
				t.Fatalf("expected passthrough, got %d", recorder.Code)
			}
		}
	})
}

func TestRouter(t *testing.T) {
	t.Parallel()

	newTestRouter := func(rooms *roomServiceStub, bookings *bookingServiceStub) http.Handler {
		return NewRouter(RouterConfig{
			Auth:     NewAuthHandler(&authServiceStub{}, nil),
			Rooms:    NewRoomHandler(rooms, nil),
			Bookings: NewBookingHandler(bookings, nil),
			Health: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}),
		})
	}

	t.Run("injects path ids into the request context", func(t *testing.T) {
		t.Parallel()

		rooms := &roomServiceStub{room: sampleRoom()}
		bookings := &bookingServiceStub{booking: sampleBooking()}
		router := newTestRouter(rooms, bookings)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/bookings/booking-7", nil))
		if recorder.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", recorder.Code)
		}
		if bookings.deletedID != "booking-7" {
			t.Fatalf("expected booking-7 from path, got %q", bookings.deletedID)
		}

		recorder = httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/rooms/room-7", nil))
		if recorder.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", recorder.Code)
		}
		if rooms.deletedID != "room-7" {
			t.Fatalf("expected room-7 from path, got %q", rooms.deletedID)
		}
	})

	t.Run("routes status and decision subresources", func(t *testing.T) {
		t.Parallel()

		rooms := &roomServiceStub{status: application.RoomStatus{RoomID: "room-1", Message: "Available"}}
		bookings := &bookingServiceStub{booking: sampleBooking()}
		router := newTestRouter(rooms, bookings)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/rooms/room-1/status", nil))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200 for status subresource, got %d", recorder.Code)
		}

		recorder = httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/bookings/booking-1/approve", nil))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200 for approve, got %d", recorder.Code)
		}
		if len(bookings.decisions) != 1 || bookings.decisions[0] != "approve:booking-1" {
			t.Fatalf("expected approve decision, got %v", bookings.decisions)
		}

		recorder = httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/bookings/booking-1/unknown", nil))
		if recorder.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown subresource, got %d", recorder.Code)
		}
	})

	t.Run("rejects unsupported methods with an Allow header", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&roomServiceStub{}, &bookingServiceStub{})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPatch, "/rooms", nil))
		if recorder.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", recorder.Code)
		}
		if allow := recorder.Header().Get("Allow"); allow != "GET, POST" {
			t.Fatalf("expected Allow header, got %q", allow)
		}

		recorder = httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/sessions", nil))
		if recorder.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405 for GET /sessions, got %d", recorder.Code)
		}
	})

	t.Run("serves the health endpoint", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&roomServiceStub{}, &bookingServiceStub{})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200 from health endpoint, got %d", recorder.Code)
		}
	})

	t.Run("applies middleware outermost first", func(t *testing.T) {
		t.Parallel()

		var order []string
		tag := func(name string) func(http.Handler) http.Handler {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewRouter(RouterConfig{
			Health: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}),
			Middleware: []func(http.Handler) http.Handler{tag("outer"), tag("inner")},
		})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
			t.Fatalf("expected outer then inner, got %v", order)
		}
	})
}
