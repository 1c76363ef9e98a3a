package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/roombook/internal/persistence"
)

const sessionColumns = `id, user_id, token, expires_at, created_at, revoked_at`

// CreateSession stores a newly issued session.
func (s *Storage) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.Token,
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
		formatNullableTime(session.RevokedAt),
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	return session, nil
}

// GetSession retrieves a session by its opaque token.
func (s *Storage) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE token = ?`
	return scanSession(s.db.QueryRowContext(ctx, query, token))
}

// RevokeSession marks the session revoked and returns the updated record.
func (s *Storage) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = ? WHERE token = ? AND revoked_at IS NULL`,
		formatTime(revokedAt), token,
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.Session{}, err
	}
	if affected == 0 {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return s.GetSession(ctx, token)
}

// DeleteExpiredSessions removes sessions that expired before reference.
func (s *Storage) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`,
		formatTime(reference),
	)
	return mapError(err)
}

func scanSession(row rowScanner) (persistence.Session, error) {
	var (
		session              persistence.Session
		expiresAt, createdAt string
		revokedAt            sql.NullString
	)
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&expiresAt,
		&createdAt,
		&revokedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Session{}, persistence.ErrNotFound
		}
		return persistence.Session{}, mapError(err)
	}

	if session.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return persistence.Session{}, err
	}
	if session.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Session{}, err
	}
	if revokedAt.Valid {
		t, err := parseTime(revokedAt.String)
		if err != nil {
			return persistence.Session{}, err
		}
		session.RevokedAt = &t
	}
	return session, nil
}
