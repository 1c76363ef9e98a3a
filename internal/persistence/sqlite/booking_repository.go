package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/roombook/internal/persistence"
)

const bookingColumns = `id, room_id, title, organizer, start_at, end_at, status, created_at, updated_at`

// CreateBooking inserts a new booking. The insert runs inside a transaction
// that re-checks the room's blocking bookings for overlap, so two concurrent
// creates for the same slot cannot both land even when the service-level
// conflict check raced.
func (s *Storage) CreateBooking(ctx context.Context, b persistence.Booking) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if statusBlocking(b.Status) {
			overlapping, err := findOverlappingTx(ctx, tx, b.RoomID, b.Start, b.End, "")
			if err != nil {
				return err
			}
			if len(overlapping) > 0 {
				return persistence.ErrConflict
			}
		}

		query := `
			INSERT INTO bookings (` + bookingColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := tx.ExecContext(ctx, query,
			b.ID,
			b.RoomID,
			b.Title,
			b.Organizer,
			formatTime(b.Start),
			formatTime(b.End),
			b.Status,
			formatTime(b.CreatedAt),
			formatTime(b.UpdatedAt),
		)
		return mapError(err)
	})
}

// UpdateBooking persists changed booking fields. The same transactional
// overlap guard applies, excluding the booking's own row.
func (s *Storage) UpdateBooking(ctx context.Context, b persistence.Booking) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if statusBlocking(b.Status) {
			overlapping, err := findOverlappingTx(ctx, tx, b.RoomID, b.Start, b.End, b.ID)
			if err != nil {
				return err
			}
			if len(overlapping) > 0 {
				return persistence.ErrConflict
			}
		}

		query := `
			UPDATE bookings
			SET title = ?, organizer = ?, start_at = ?, end_at = ?, status = ?, updated_at = ?
			WHERE id = ?
		`
		result, err := tx.ExecContext(ctx, query,
			b.Title,
			b.Organizer,
			formatTime(b.Start),
			formatTime(b.End),
			b.Status,
			formatTime(b.UpdatedAt),
			b.ID,
		)
		if err != nil {
			return mapError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("sqlite: rows affected: %w", err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}

// GetBooking retrieves a booking by ID.
func (s *Storage) GetBooking(ctx context.Context, id string) (persistence.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return scanBooking(s.db.QueryRowContext(ctx, query, id))
}

// ListBookings returns all bookings ordered by start time ascending.
func (s *Storage) ListBookings(ctx context.Context) ([]persistence.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY start_at ASC, id ASC`
	return s.queryBookings(ctx, query)
}

// ListBookingsForRoom returns the bookings for one room ordered by start time.
func (s *Storage) ListBookingsForRoom(ctx context.Context, roomID string) ([]persistence.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE room_id = ? ORDER BY start_at ASC, id ASC`
	return s.queryBookings(ctx, query, roomID)
}

// FindOverlapping returns blocking bookings for roomID whose intervals overlap
// [start, end). Strict inequalities keep back-to-back bookings out of the
// result.
func (s *Storage) FindOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) ([]persistence.Booking, error) {
	var bookings []persistence.Booking
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		bookings, err = findOverlappingTx(ctx, tx, roomID, start, end, excludeID)
		return err
	})
	return bookings, err
}

// DeleteBooking removes a booking by ID.
func (s *Storage) DeleteBooking(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// statusBlocking mirrors the blocking set used by the conflict engine:
// declined bookings never occupy a slot.
func statusBlocking(status string) bool {
	return status == "pending" || status == "approved"
}

func findOverlappingTx(ctx context.Context, tx *sql.Tx, roomID string, start, end time.Time, excludeID string) ([]persistence.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = ?
		  AND status IN ('pending', 'approved')
		  AND start_at < ?
		  AND end_at > ?
	`
	args := []any{roomID, formatTime(end), formatTime(start)}
	if excludeID != "" {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}
	query += ` ORDER BY start_at ASC, id ASC`

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var bookings []persistence.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (s *Storage) queryBookings(ctx context.Context, query string, args ...any) ([]persistence.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var bookings []persistence.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (persistence.Booking, error) {
	var (
		b                    persistence.Booking
		organizer            sql.NullString
		start, end           string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&b.ID,
		&b.RoomID,
		&b.Title,
		&organizer,
		&start,
		&end,
		&b.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Booking{}, persistence.ErrNotFound
		}
		return persistence.Booking{}, mapError(err)
	}

	if organizer.Valid {
		b.Organizer = &organizer.String
	}
	if b.Start, err = parseTime(start); err != nil {
		return persistence.Booking{}, err
	}
	if b.End, err = parseTime(end); err != nil {
		return persistence.Booking{}, err
	}
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Booking{}, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Booking{}, err
	}
	return b, nil
}
