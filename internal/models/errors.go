package models

import "errors"

// Domain errors surfaced to clients. Handlers map these to status codes;
// anything else renders as an internal server error.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrMissingRefreshToken    = errors.New("missing refresh token")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrInvalidOrExpiredToken  = errors.New("invalid or expired token")
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrExpiredOrInvalid       = errors.New("token expired or invalid")
	ErrUserNotFound           = errors.New("user not found")
)
