package usecase

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid token format")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("booking session not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrMovieNotFound      = errors.New("movie not found")
	ErrCatalogUnavailable = errors.New("movie catalogue unavailable")
)
