package repository

import (
	"database/sql"
	"time"

	"github.com/mindfulware/therabot/internal/domain"
)

// UserRepository handles user persistence
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user and fills in the generated ID
func (r *UserRepository) Create(user *domain.User) error {
	user.CreatedAt = time.Now()

	res, err := r.db.Exec(`
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
	`, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*domain.User, error) {
	user := &domain.User{}

	err := r.db.QueryRow(`
		SELECT id, username, password_hash, created_at
		FROM users WHERE username = ?
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(id int64) (*domain.User, error) {
	user := &domain.User{}

	err := r.db.QueryRow(`
		SELECT id, username, password_hash, created_at
		FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}
