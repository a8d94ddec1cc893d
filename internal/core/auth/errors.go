package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when the password does not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for malformed, expired or badly signed tokens
	ErrInvalidToken = errors.New("invalid or expired token")
)
