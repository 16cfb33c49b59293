package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/storage"
)

func (s *Store) AddUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, strings.ToLower(user.Email), user.PasswordHash,
		user.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("user %s: %w", user.Email, storage.ErrConflict)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	return s.scanUser(s.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE email = ?`, strings.ToLower(email)))
}

func (s *Store) AddSession(token, userID string) error {
	_, err := s.db.Exec(`INSERT INTO sessions (token, user_id, created_at) VALUES (?, ?, ?)`,
		token, userID, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *Store) GetSessionUser(token string) (models.User, error) {
	return s.scanUser(s.db.QueryRow(`
		SELECT u.id, u.username, u.email, u.password_hash, u.created_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.token = ?`, token))
}

func (s *Store) DeleteSession(token string) error {
	result, err := s.db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session: %w", storage.ErrNotFound)
	}
	return nil
}

func (s *Store) scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	if u.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return models.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return u, nil
}
