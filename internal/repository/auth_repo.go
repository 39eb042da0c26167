package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/mindfulware/therabot/internal/domain"
)

// AuthRepository handles login session persistence
type AuthRepository struct {
	db *DB
}

// NewAuthRepository creates a new auth repository
func NewAuthRepository(db *DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// Create issues a new session token for a user
func (r *AuthRepository) Create(session *domain.AuthSession) error {
	if session.Token == "" {
		session.Token = uuid.New().String()
	}
	session.CreatedAt = time.Now()

	_, err := r.db.Exec(`
		INSERT INTO auth_sessions (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, session.Token, session.UserID, session.CreatedAt, session.ExpiresAt)

	return err
}

// Get retrieves a session by token; expired sessions are treated as absent
func (r *AuthRepository) Get(token string) (*domain.AuthSession, error) {
	session := &domain.AuthSession{}

	err := r.db.QueryRow(`
		SELECT token, user_id, created_at, expires_at
		FROM auth_sessions WHERE token = ?
	`, token).Scan(&session.Token, &session.UserID, &session.CreatedAt, &session.ExpiresAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = r.Delete(token)
		return nil, nil
	}

	return session, nil
}

// Delete revokes a session token
func (r *AuthRepository) Delete(token string) error {
	_, err := r.db.Exec(`DELETE FROM auth_sessions WHERE token = ?`, token)
	return err
}
