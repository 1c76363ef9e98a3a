package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/roombook/internal/persistence"
)

const userColumns = `id, email, display_name, password_hash, is_admin, created_at, updated_at`

// CreateUser inserts a new user account.
func (s *Storage) CreateUser(ctx context.Context, user persistence.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		boolToInt(user.IsAdmin),
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	return mapError(err)
}

// GetUser retrieves a user by ID.
func (s *Storage) GetUser(ctx context.Context, id string) (persistence.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(s.db.QueryRowContext(ctx, query, id))
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? COLLATE NOCASE`
	return scanUser(s.db.QueryRowContext(ctx, query, email))
}

// ListUsers returns every user ordered by creation time, then ID.
func (s *Storage) ListUsers(ctx context.Context) ([]persistence.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []persistence.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanUser(row rowScanner) (persistence.User, error) {
	var (
		user                 persistence.User
		isAdmin              int
		createdAt, updatedAt string
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&isAdmin,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.User{}, persistence.ErrNotFound
		}
		return persistence.User{}, mapError(err)
	}

	user.IsAdmin = isAdmin != 0
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.User{}, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.User{}, err
	}
	return user, nil
}
