package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Auth       *AuthHandler
	Rooms      *RoomHandler
	Bookings   *BookingHandler
	Health     http.Handler
	Metrics    http.Handler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Auth != nil {
		mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.CreateSession(w, r)
		})
		mux.HandleFunc("/sessions/current", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Auth.DeleteCurrentSession(w, r)
		})
	}

	if cfg.Rooms != nil {
		mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Rooms.List(w, r)
			case http.MethodPost:
				cfg.Rooms.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/rooms/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/rooms/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}

			id, tail, _ := strings.Cut(rest, "/")
			ctx := ContextWithRoomID(r.Context(), id)
			r = r.WithContext(ctx)

			if tail == "status" {
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				cfg.Rooms.Status(w, r)
				return
			}
			if tail != "" {
				http.NotFound(w, r)
				return
			}

			switch r.Method {
			case http.MethodGet:
				cfg.Rooms.Get(w, r)
			case http.MethodPut:
				cfg.Rooms.Update(w, r)
			case http.MethodDelete:
				cfg.Rooms.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Bookings != nil {
		mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Bookings.List(w, r)
			case http.MethodPost:
				cfg.Bookings.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/bookings/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/bookings/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}

			id, tail, _ := strings.Cut(rest, "/")
			ctx := ContextWithBookingID(r.Context(), id)
			r = r.WithContext(ctx)

			switch tail {
			case "approve":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Bookings.Approve(w, r)
				return
			case "decline":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Bookings.Decline(w, r)
				return
			case "":
			default:
				http.NotFound(w, r)
				return
			}

			switch r.Method {
			case http.MethodGet:
				cfg.Bookings.Get(w, r)
			case http.MethodPut:
				cfg.Bookings.Update(w, r)
			case http.MethodDelete:
				cfg.Bookings.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Health != nil {
		mux.Handle("/healthz", cfg.Health)
	}
	if cfg.Metrics != nil {
		mux.Handle("/metrics", cfg.Metrics)
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
