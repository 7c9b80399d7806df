package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"habitkit/internal/domain"
)

var _ domain.UserRepository = (*DB)(nil)

func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = $1",
		username)
	return scanUser(row)
}

func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE id = $1",
		id)
	return scanUser(row)
}

func (d *DB) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	u := &domain.User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id",
		u.Username, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (d *DB) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, "SELECT count(*) FROM users").Scan(&n)
	return n, err
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SessionRepo implements domain.SessionRepository over the shared connection.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo returns the session repository view of the database.
func (d *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: d}
}

var _ domain.SessionRepository = (*SessionRepo)(nil)

func (s *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent string, expiresAt time.Time) error {
	_, err := s.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, user_agent, expires_at, created_at) VALUES ($1, $2, $3, $4, $5)",
		token, userID, userAgent, expiresAt, time.Now().UTC())
	return err
}

func (s *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	row := s.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, user_agent, expires_at, created_at FROM sessions WHERE token = $1",
		token)
	var sess domain.Session
	err := row.Scan(&sess.Token, &sess.UserID, &sess.UserAgent, &sess.ExpiresAt, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := s.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

func (s *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := s.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < now()")
	return err
}
