package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/roombook/internal/persistence"
)

// CreateRoom inserts a new room.
func (s *Storage) CreateRoom(ctx context.Context, room persistence.Room) error {
	amenities, err := encodeAmenities(room.Amenities)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO rooms (id, name, location, capacity, is_active, work_hours_start, work_hours_end, amenities, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		room.Location,
		room.Capacity,
		boolToInt(room.IsActive),
		room.WorkHoursStart,
		room.WorkHoursEnd,
		amenities,
		formatTime(room.CreatedAt),
		formatTime(room.UpdatedAt),
	)
	return mapError(err)
}

// UpdateRoom updates an existing room.
func (s *Storage) UpdateRoom(ctx context.Context, room persistence.Room) error {
	amenities, err := encodeAmenities(room.Amenities)
	if err != nil {
		return err
	}

	query := `
		UPDATE rooms
		SET name = ?, location = ?, capacity = ?, is_active = ?, work_hours_start = ?, work_hours_end = ?, amenities = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		room.Name,
		room.Location,
		room.Capacity,
		boolToInt(room.IsActive),
		room.WorkHoursStart,
		room.WorkHoursEnd,
		amenities,
		formatTime(room.UpdatedAt),
		room.ID,
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
}

// GetRoom retrieves a room by ID.
func (s *Storage) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	query := `
		SELECT id, name, location, capacity, is_active, work_hours_start, work_hours_end, amenities, created_at, updated_at
		FROM rooms
		WHERE id = ?
	`
	return scanRoom(s.db.QueryRowContext(ctx, query, id))
}

// ListRooms returns every room ordered by name, then ID.
func (s *Storage) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	query := `
		SELECT id, name, location, capacity, is_active, work_hours_start, work_hours_end, amenities, created_at, updated_at
		FROM rooms
		ORDER BY name COLLATE NOCASE ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var rooms []persistence.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// DeleteRoom removes a room and, via cascade, its bookings.
func (s *Storage) DeleteRoom(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (persistence.Room, error) {
	var (
		room                 persistence.Room
		isActive             int
		amenities            string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Location,
		&room.Capacity,
		&isActive,
		&room.WorkHoursStart,
		&room.WorkHoursEnd,
		&amenities,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Room{}, persistence.ErrNotFound
		}
		return persistence.Room{}, mapError(err)
	}

	room.IsActive = isActive != 0
	if err := json.Unmarshal([]byte(amenities), &room.Amenities); err != nil {
		return persistence.Room{}, fmt.Errorf("sqlite: decode amenities: %w", err)
	}
	if room.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Room{}, err
	}
	if room.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Room{}, err
	}
	return room, nil
}

func encodeAmenities(amenities []string) (string, error) {
	if amenities == nil {
		amenities = []string{}
	}
	data, err := json.Marshal(amenities)
	if err != nil {
		return "", fmt.Errorf("sqlite: encode amenities: %w", err)
	}
	return string(data), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
