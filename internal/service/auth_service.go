package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mindfulware/therabot/internal/domain"
	"github.com/mindfulware/therabot/internal/repository"
)

// AuthService handles account registration and login sessions
type AuthService struct {
	userRepo   *repository.UserRepository
	authRepo   *repository.AuthRepository
	sessionTTL time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, authRepo *repository.AuthRepository, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 720 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		authRepo:   authRepo,
		sessionTTL: sessionTTL,
	}
}

// Signup registers a new account and logs it in
func (s *AuthService) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.AuthResponse, error) {
	existing, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.startSession(user)
}

// Login authenticates a user and starts a session
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrBadCredentials
	}

	return s.startSession(user)
}

// Logout revokes a session token
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.authRepo.Delete(token)
}

// Authenticate resolves a session token to its user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.authRepo.Get(token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.Get(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

func (s *AuthService) startSession(user *domain.User) (*domain.AuthResponse, error) {
	session := &domain.AuthSession{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.authRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &domain.AuthResponse{
		Token:    session.Token,
		Username: user.Username,
		UserID:   user.ID,
	}, nil
}
