package domain

import "errors"

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized indicates unauthorized access
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUsernameTaken indicates the username is already registered
	ErrUsernameTaken = errors.New("username already registered")
	// ErrBadCredentials indicates a failed login attempt
	ErrBadCredentials = errors.New("incorrect username or password")
)
