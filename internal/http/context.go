package http

import (
	"context"
	"log/slog"

	"github.com/example/roombook/internal/application"
	"github.com/example/roombook/internal/logging"
)

type contextKey string

const (
	principalContextKey contextKey = "principal"
	roomIDContextKey    contextKey = "room_id"
	bookingIDContextKey contextKey = "booking_id"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

// ContextWithRoomID injects the room identifier resolved from the request path.
func ContextWithRoomID(ctx context.Context, roomID string) context.Context {
	return context.WithValue(ctx, roomIDContextKey, roomID)
}

// RoomIDFromContext extracts a room identifier previously associated with the context.
func RoomIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(roomIDContextKey).(string)
	return id, ok
}

// ContextWithBookingID injects the booking identifier resolved from the request path.
func ContextWithBookingID(ctx context.Context, bookingID string) context.Context {
	return context.WithValue(ctx, bookingIDContextKey, bookingID)
}

// BookingIDFromContext extracts a booking identifier previously associated with the context.
func BookingIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(bookingIDContextKey).(string)
	return id, ok
}

// ContextWithLogger attaches a request scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext returns the request scoped logger, if any.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
