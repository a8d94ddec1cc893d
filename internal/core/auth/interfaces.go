package auth

import (
	"context"

	"Murmur/internal/core/users"
)

// SignupRequest is the input for creating an account
type SignupRequest struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest accepts either an email or a username
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

// TokenResponse carries the issued access token
type TokenResponse struct {
	Token string `json:"token"`
}

// UserStore is the slice of the user repository auth needs
type UserStore interface {
	Create(ctx context.Context, user *users.User) error
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	GetByUsername(ctx context.Context, username string) (*users.User, error)
}

// Service defines signup and login
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
}
