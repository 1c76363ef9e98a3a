package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/roombook/internal/application"
)

type bookingService interface {
	CreateBooking(ctx context.Context, params application.CreateBookingParams) (application.Booking, error)
	UpdateBooking(ctx context.Context, params application.UpdateBookingParams) (application.Booking, error)
	ApproveBooking(ctx context.Context, principal application.Principal, bookingID string) (application.Booking, error)
	DeclineBooking(ctx context.Context, principal application.Principal, bookingID string) (application.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (application.Booking, error)
	ListBookings(ctx context.Context, roomID string) ([]application.Booking, error)
	DeleteBooking(ctx context.Context, principal application.Principal, bookingID string) error
}

type BookingHandler struct {
	service   bookingService
	responder responder
	logger    *slog.Logger
}

func NewBookingHandler(service bookingService, logger *slog.Logger) *BookingHandler {
	base := defaultLogger(logger)
	return &BookingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BookingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BookingHandler", operation, attrs...)
}

// Create registers a new booking request. The booking starts in the pending
// state and waits for an administrator decision.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, fieldErrs := req.toInput()
	if len(fieldErrs) > 0 {
		h.responder.writeJSON(r.Context(), w, http.StatusUnprocessableEntity, errorResponse{
			Message: statusMessage(http.StatusUnprocessableEntity),
			Errors:  fieldErrs,
		})
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.UserID, "room_id", input.RoomID)

	booking, err := h.service.CreateBooking(r.Context(), application.CreateBookingParams{
		Principal: principal,
		Input:     input,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "booking creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("booking_id", booking.ID).InfoContext(r.Context(), "booking created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, bookingResponse{Booking: toBookingDTO(booking)})
}

// List returns bookings ordered by start time. An optional room_id query
// parameter narrows the result to a single room.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	roomID := strings.TrimSpace(r.URL.Query().Get("room_id"))
	logger := h.log(r.Context(), "List", "room_id", roomID)

	bookings, err := h.service.ListBookings(r.Context(), roomID)
	if err != nil {
		logger.ErrorContext(r.Context(), "booking list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(bookings)).InfoContext(r.Context(), "bookings listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBookingsResponse{Bookings: toBookingDTOs(bookings)})
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	bookingID, ok := BookingIDFromContext(r.Context())
	if !ok || strings.TrimSpace(bookingID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	logger := h.log(r.Context(), "Get", "booking_id", bookingID)
	booking, err := h.service.GetBooking(r.Context(), bookingID)
	if err != nil {
		logger.ErrorContext(r.Context(), "booking lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, bookingResponse{Booking: toBookingDTO(booking)})
}

// Update applies a partial update to a booking. Only fields present in the
// request body change; an empty organizer string clears the organizer.
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	bookingID, ok := BookingIDFromContext(r.Context())
	if !ok || strings.TrimSpace(bookingID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req updateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "principal_id", principal.UserID, "booking_id", bookingID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	patch, fieldErrs := req.toPatch()
	if len(fieldErrs) > 0 {
		h.responder.writeJSON(r.Context(), w, http.StatusUnprocessableEntity, errorResponse{
			Message: statusMessage(http.StatusUnprocessableEntity),
			Errors:  fieldErrs,
		})
		return
	}

	logger := h.log(r.Context(), "Update", "principal_id", principal.UserID, "booking_id", bookingID)

	booking, err := h.service.UpdateBooking(r.Context(), application.UpdateBookingParams{
		Principal: principal,
		BookingID: bookingID,
		Patch:     patch,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "booking update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "booking updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, bookingResponse{Booking: toBookingDTO(booking)})
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	bookingID, ok := BookingIDFromContext(r.Context())
	if !ok || strings.TrimSpace(bookingID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.UserID, "booking_id", bookingID)

	if err := h.service.DeleteBooking(r.Context(), principal, bookingID); err != nil {
		logger.ErrorContext(r.Context(), "booking delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "booking deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Approve moves a pending booking to approved. Approving an already approved
// booking is a no-op.
func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Approve", func(ctx context.Context, principal application.Principal, bookingID string) (application.Booking, error) {
		return h.service.ApproveBooking(ctx, principal, bookingID)
	})
}

// Decline moves a pending booking to declined. Declining an already declined
// booking is a no-op.
func (h *BookingHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Decline", func(ctx context.Context, principal application.Principal, bookingID string) (application.Booking, error) {
		return h.service.DeclineBooking(ctx, principal, bookingID)
	})
}

func (h *BookingHandler) decide(w http.ResponseWriter, r *http.Request, operation string, decide func(context.Context, application.Principal, string) (application.Booking, error)) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	bookingID, ok := BookingIDFromContext(r.Context())
	if !ok || strings.TrimSpace(bookingID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), operation, "principal_id", principal.UserID, "booking_id", bookingID)

	booking, err := decide(r.Context(), principal, bookingID)
	if err != nil {
		logger.ErrorContext(r.Context(), "booking decision failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("status", string(booking.Status)).InfoContext(r.Context(), "booking decision recorded")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, bookingResponse{Booking: toBookingDTO(booking)})
}

type createBookingRequest struct {
	RoomID    string  `json:"room_id"`
	Title     string  `json:"title"`
	Organizer *string `json:"organizer"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
}

func (r createBookingRequest) toInput() (application.BookingInput, map[string]string) {
	input := application.BookingInput{
		RoomID:    strings.TrimSpace(r.RoomID),
		Title:     r.Title,
		Organizer: r.Organizer,
	}

	fieldErrs := map[string]string{}
	if r.Start != "" {
		start, err := time.Parse(time.RFC3339, r.Start)
		if err != nil {
			fieldErrs["start"] = "start must be an RFC 3339 timestamp"
		} else {
			input.Start = start
		}
	}
	if r.End != "" {
		end, err := time.Parse(time.RFC3339, r.End)
		if err != nil {
			fieldErrs["end"] = "end must be an RFC 3339 timestamp"
		} else {
			input.End = end
		}
	}
	if len(fieldErrs) == 0 {
		fieldErrs = nil
	}
	return input, fieldErrs
}

type updateBookingRequest struct {
	RoomID    *string `json:"room_id"`
	Title     *string `json:"title"`
	Organizer *string `json:"organizer"`
	Start     *string `json:"start"`
	End       *string `json:"end"`
}

func (r updateBookingRequest) toPatch() (application.BookingPatch, map[string]string) {
	patch := application.BookingPatch{
		RoomID:    r.RoomID,
		Title:     r.Title,
		Organizer: r.Organizer,
	}

	fieldErrs := map[string]string{}
	if r.Start != nil {
		start, err := time.Parse(time.RFC3339, *r.Start)
		if err != nil {
			fieldErrs["start"] = "start must be an RFC 3339 timestamp"
		} else {
			patch.Start = &start
		}
	}
	if r.End != nil {
		end, err := time.Parse(time.RFC3339, *r.End)
		if err != nil {
			fieldErrs["end"] = "end must be an RFC 3339 timestamp"
		} else {
			patch.End = &end
		}
	}
	if len(fieldErrs) == 0 {
		fieldErrs = nil
	}
	return patch, fieldErrs
}

type bookingResponse struct {
	Booking bookingDTO `json:"booking"`
}

type listBookingsResponse struct {
	Bookings []bookingDTO `json:"bookings"`
}

type bookingDTO struct {
	ID        string  `json:"id"`
	RoomID    string  `json:"room_id"`
	Title     string  `json:"title"`
	Organizer *string `json:"organizer,omitempty"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func toBookingDTO(booking application.Booking) bookingDTO {
	return bookingDTO{
		ID:        booking.ID,
		RoomID:    booking.RoomID,
		Title:     booking.Title,
		Organizer: booking.Organizer,
		Start:     booking.Start.UTC().Format(time.RFC3339Nano),
		End:       booking.End.UTC().Format(time.RFC3339Nano),
		Status:    string(booking.Status),
		CreatedAt: booking.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: booking.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toBookingDTOs(bookings []application.Booking) []bookingDTO {
	if len(bookings) == 0 {
		return nil
	}
	out := make([]bookingDTO, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, toBookingDTO(booking))
	}
	return out
}
