package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/example/roombook/internal/application"
	"github.com/example/roombook/internal/booking"
	"github.com/example/roombook/internal/config"
	httptransport "github.com/example/roombook/internal/http"
	"github.com/example/roombook/internal/metrics"
	"github.com/example/roombook/internal/persistence"
	"github.com/example/roombook/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	metrics.Register()

	idGenerator := uuid.NewString
	tokenGenerator := func() string { return randomHex(32) }
	now := time.Now

	var statusCache *application.StatusCache
	if cfg.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to redis", "addr", cfg.Redis.Address, "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := client.Close(); cerr != nil {
				logger.Error("failed to close redis client", "error", cerr)
			}
		}()
		statusCache = application.NewStatusCache(client, cfg.StatusCache.TTL.Std())
		logger.Info("room status cache enabled", "addr", cfg.Redis.Address, "ttl", cfg.StatusCache.TTL.Std())
	}

	bookingRepo := newBookingRepositoryAdapter(storage)
	roomRepo := newRoomRepositoryAdapter(storage)
	sessionRepo := newSessionRepositoryAdapter(storage)
	credentialStore := newCredentialStoreAdapter(storage)

	if cfg.Admin.Email != "" {
		if err := seedAdminUser(ctx, storage, cfg.Admin.Email, cfg.Admin.Password, idGenerator, now); err != nil {
			logger.Error("failed to seed admin user", "error", err)
			os.Exit(1)
		}
	}

	bookingService := application.NewBookingServiceWithLogger(bookingRepo, roomRepo, statusCache, idGenerator, now, logger)
	roomService := application.NewRoomServiceWithLogger(roomRepo, bookingRepo, statusCache, idGenerator, now, logger)
	authService := application.NewAuthServiceWithLogger(credentialStore, sessionRepo, nil, tokenGenerator, now, cfg.Session.TTL.Std(), logger)

	authHandler := httptransport.NewAuthHandler(authService, logger)
	roomHandler := httptransport.NewRoomHandler(roomService, logger)
	bookingHandler := httptransport.NewBookingHandler(bookingService, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:     authHandler,
		Rooms:    roomHandler,
		Bookings: bookingHandler,
		Health: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := storage.Ping(r.Context()); err != nil {
				http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		}),
		Metrics: promhttp.Handler(),
	})

	protected := httptransport.RequireSession(authService, logger)(router)
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicRoute(r) {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	})
	handler = httptransport.RequestLogger(logger)(handler)
	handler = httptransport.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)(handler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout.Std())
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("room booking API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// isPublicRoute reports whether the request may bypass session validation.
func isPublicRoute(r *http.Request) bool {
	switch {
	case r.Method == http.MethodPost && strings.EqualFold(r.URL.Path, "/sessions"):
		return true
	case strings.EqualFold(r.URL.Path, "/healthz"), strings.EqualFold(r.URL.Path, "/metrics"):
		return true
	}
	return false
}

func randomHex(bytes int) string {
	if bytes <= 0 {
		bytes = 16
	}
	buf := make([]byte, bytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

// seedAdminUser creates the configured administrator account when no user with
// that email exists yet.
func seedAdminUser(ctx context.Context, users persistence.UserRepository, email, password string, idGenerator func() string, now func() time.Time) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := users.GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, persistence.ErrNotFound) {
		return err
	}

	hash, err := application.CreatePasswordHash(password, application.DefaultArgon2idParams)
	if err != nil {
		return err
	}

	created := now().UTC()
	return users.CreateUser(ctx, persistence.User{
		ID:           idGenerator(),
		Email:        email,
		DisplayName:  "Administrator",
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    created,
		UpdatedAt:    created,
	})
}

type bookingRepositoryAdapter struct {
	repo persistence.BookingRepository
}

func newBookingRepositoryAdapter(repo persistence.BookingRepository) *bookingRepositoryAdapter {
	return &bookingRepositoryAdapter{repo: repo}
}

func (a *bookingRepositoryAdapter) CreateBooking(ctx context.Context, b application.Booking) (application.Booking, error) {
	if err := a.repo.CreateBooking(ctx, toPersistenceBooking(b)); err != nil {
		return application.Booking{}, err
	}
	stored, err := a.repo.GetBooking(ctx, b.ID)
	if err != nil {
		return application.Booking{}, err
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingRepositoryAdapter) GetBooking(ctx context.Context, id string) (application.Booking, error) {
	stored, err := a.repo.GetBooking(ctx, id)
	if err != nil {
		return application.Booking{}, err
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingRepositoryAdapter) UpdateBooking(ctx context.Context, b application.Booking) (application.Booking, error) {
	if err := a.repo.UpdateBooking(ctx, toPersistenceBooking(b)); err != nil {
		return application.Booking{}, err
	}
	stored, err := a.repo.GetBooking(ctx, b.ID)
	if err != nil {
		return application.Booking{}, err
	}
	return toApplicationBooking(stored), nil
}

func (a *bookingRepositoryAdapter) DeleteBooking(ctx context.Context, id string) error {
	return a.repo.DeleteBooking(ctx, id)
}

func (a *bookingRepositoryAdapter) ListBookings(ctx context.Context) ([]application.Booking, error) {
	models, err := a.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	return toApplicationBookings(models), nil
}

func (a *bookingRepositoryAdapter) ListBookingsForRoom(ctx context.Context, roomID string) ([]application.Booking, error) {
	models, err := a.repo.ListBookingsForRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return toApplicationBookings(models), nil
}

func (a *bookingRepositoryAdapter) FindOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) ([]application.Booking, error) {
	models, err := a.repo.FindOverlapping(ctx, roomID, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	return toApplicationBookings(models), nil
}

type roomRepositoryAdapter struct {
	repo persistence.RoomRepository
}

func newRoomRepositoryAdapter(repo persistence.RoomRepository) *roomRepositoryAdapter {
	return &roomRepositoryAdapter{repo: repo}
}

func (a *roomRepositoryAdapter) CreateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := a.repo.CreateRoom(ctx, toPersistenceRoom(room)); err != nil {
		return application.Room{}, err
	}
	stored, err := a.repo.GetRoom(ctx, room.ID)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) GetRoom(ctx context.Context, id string) (application.Room, error) {
	stored, err := a.repo.GetRoom(ctx, id)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) UpdateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := a.repo.UpdateRoom(ctx, toPersistenceRoom(room)); err != nil {
		return application.Room{}, err
	}
	stored, err := a.repo.GetRoom(ctx, room.ID)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) DeleteRoom(ctx context.Context, id string) error {
	return a.repo.DeleteRoom(ctx, id)
}

func (a *roomRepositoryAdapter) ListRooms(ctx context.Context) ([]application.Room, error) {
	models, err := a.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	rooms := make([]application.Room, 0, len(models))
	for _, model := range models {
		rooms = append(rooms, toApplicationRoom(model))
	}
	return rooms, nil
}

type sessionRepositoryAdapter struct {
	repo persistence.SessionRepository
}

func newSessionRepositoryAdapter(repo persistence.SessionRepository) *sessionRepositoryAdapter {
	return &sessionRepositoryAdapter{repo: repo}
}

func (a *sessionRepositoryAdapter) CreateSession(ctx context.Context, session application.Session) (application.Session, error) {
	stored, err := a.repo.CreateSession(ctx, toPersistenceSession(session))
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) GetSession(ctx context.Context, token string) (application.Session, error) {
	stored, err := a.repo.GetSession(ctx, token)
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (application.Session, error) {
	stored, err := a.repo.RevokeSession(ctx, token, revokedAt)
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	return a.repo.DeleteExpiredSessions(ctx, reference)
}

type credentialStoreAdapter struct {
	repo persistence.UserRepository
}

func newCredentialStoreAdapter(repo persistence.UserRepository) *credentialStoreAdapter {
	return &credentialStoreAdapter{repo: repo}
}

func (a *credentialStoreAdapter) GetUserCredentialsByEmail(ctx context.Context, email string) (application.UserCredentials, error) {
	stored, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return application.UserCredentials{}, err
	}
	return application.UserCredentials{
		User:         toApplicationUser(stored),
		PasswordHash: stored.PasswordHash,
	}, nil
}

func (a *credentialStoreAdapter) GetUser(ctx context.Context, id string) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

func toApplicationUser(model persistence.User) application.User {
	return application.User{
		ID:          model.ID,
		Email:       model.Email,
		DisplayName: model.DisplayName,
		IsAdmin:     model.IsAdmin,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toApplicationRoom(model persistence.Room) application.Room {
	return application.Room{
		ID:             model.ID,
		Name:           model.Name,
		Location:       model.Location,
		Capacity:       model.Capacity,
		IsActive:       model.IsActive,
		WorkHoursStart: model.WorkHoursStart,
		WorkHoursEnd:   model.WorkHoursEnd,
		Amenities:      append([]string(nil), model.Amenities...),
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

func toPersistenceRoom(room application.Room) persistence.Room {
	return persistence.Room{
		ID:             room.ID,
		Name:           room.Name,
		Location:       room.Location,
		Capacity:       room.Capacity,
		IsActive:       room.IsActive,
		WorkHoursStart: room.WorkHoursStart,
		WorkHoursEnd:   room.WorkHoursEnd,
		Amenities:      append([]string(nil), room.Amenities...),
		CreatedAt:      room.CreatedAt,
		UpdatedAt:      room.UpdatedAt,
	}
}

func toApplicationBooking(model persistence.Booking) application.Booking {
	return application.Booking{
		ID:        model.ID,
		RoomID:    model.RoomID,
		Title:     model.Title,
		Organizer: cloneString(model.Organizer),
		Start:     model.Start,
		End:       model.End,
		Status:    booking.Status(model.Status),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toApplicationBookings(models []persistence.Booking) []application.Booking {
	if len(models) == 0 {
		return nil
	}
	bookings := make([]application.Booking, 0, len(models))
	for _, model := range models {
		bookings = append(bookings, toApplicationBooking(model))
	}
	return bookings
}

func toPersistenceBooking(b application.Booking) persistence.Booking {
	return persistence.Booking{
		ID:        b.ID,
		RoomID:    b.RoomID,
		Title:     b.Title,
		Organizer: cloneString(b.Organizer),
		Start:     b.Start,
		End:       b.End,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toApplicationSession(model persistence.Session) application.Session {
	return application.Session{
		ID:        model.ID,
		UserID:    model.UserID,
		Token:     model.Token,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
		RevokedAt: cloneTime(model.RevokedAt),
	}
}

func toPersistenceSession(session application.Session) persistence.Session {
	return persistence.Session{
		ID:        session.ID,
		UserID:    session.UserID,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
		RevokedAt: cloneTime(session.RevokedAt),
	}
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
