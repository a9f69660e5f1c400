package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInviteExpired         = errors.New("invite code expired")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
