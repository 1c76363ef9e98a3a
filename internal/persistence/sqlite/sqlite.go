// Package sqlite implements the persistence repositories on top of SQLite
// using the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/roombook/internal/persistence"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE COLLATE NOCASE,
	display_name  TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	is_admin      INTEGER NOT NULL DEFAULT 0,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	token      TEXT NOT NULL UNIQUE,
	expires_at TEXT NOT NULL,
	created_at TEXT NOT NULL,
	revoked_at TEXT
);

CREATE TABLE IF NOT EXISTS rooms (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	location         TEXT NOT NULL,
	capacity         INTEGER NOT NULL CHECK (capacity > 0),
	is_active        INTEGER NOT NULL DEFAULT 1,
	work_hours_start TEXT NOT NULL,
	work_hours_end   TEXT NOT NULL,
	amenities        TEXT NOT NULL DEFAULT '[]',
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL,
	CHECK (work_hours_start < work_hours_end)
);

CREATE TABLE IF NOT EXISTS bookings (
	id         TEXT PRIMARY KEY,
	room_id    TEXT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	organizer  TEXT,
	start_at   TEXT NOT NULL,
	end_at     TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'pending'
	           CHECK (status IN ('pending', 'approved', 'declined')),
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	CHECK (start_at < end_at)
);

CREATE INDEX IF NOT EXISTS idx_bookings_room_window
	ON bookings (room_id, start_at, end_at);
`

// Storage wraps the SQLite handle and implements every persistence repository.
type Storage struct {
	db *sql.DB
}

// Open connects to the SQLite database identified by dsn.
func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", dsn, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate creates the schema when it does not exist yet.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction, rolling back on error or panic.
func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("sqlite: transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit transaction: %w", err)
	}
	return nil
}

// mapError translates driver errors into persistence sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return persistence.ErrNotFound
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return persistence.ErrDuplicate
	case strings.Contains(msg, "CHECK constraint failed"):
		return persistence.ErrConstraintViolation
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return persistence.ErrConstraintViolation
	}
	return err
}

// timeLayout is fixed width so stored timestamps sort lexicographically in
// the same order as the instants they represent, which the overlap query
// relies on.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse timestamp %q: %w", value, err)
	}
	return t, nil
}

func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}
