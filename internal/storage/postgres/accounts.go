package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	pq "github.com/lib/pq"

	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/storage"
)

const uniqueViolation = "23505"

func (s *Store) AddUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, strings.ToLower(user.Email), user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("user %s: %w", user.Email, storage.ErrConflict)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	return scanUser(s.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE email = $1`, strings.ToLower(email)))
}

func (s *Store) AddSession(token, userID string) error {
	if _, err := s.db.Exec(`INSERT INTO sessions (token, user_id) VALUES ($1, $2)`, token, userID); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *Store) GetSessionUser(token string) (models.User, error) {
	return scanUser(s.db.QueryRow(`
		SELECT u.id, u.username, u.email, u.password_hash, u.created_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.token = $1`, token))
}

func (s *Store) DeleteSession(token string) error {
	result, err := s.db.Exec(`DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session: %w", storage.ErrNotFound)
	}
	return nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
