package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"Murmur/internal/core/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	bcryptCost        = 10
)

type authService struct {
	users  UserStore
	tokens *TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(userStore UserStore, tokens *TokenIssuer) Service {
	return &authService{
		users:  userStore,
		tokens: tokens,
	}
}

// Signup creates an account and returns a token for it.
// New accounts are public until the owner changes their visibility.
func (s *authService) Signup(ctx context.Context, req SignupRequest) (*TokenResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateSignup(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: string(hash),
		IsPublic:     true,
		CreatedAt:    time.Now().UTC(),
	}
	// Repository maps unique violations to ErrUsernameTaken / ErrEmailTaken
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user.ID)
}

// Login checks credentials against the stored bcrypt hash
func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	if req.Password == "" {
		return nil, users.NewValidationError("password", "required")
	}

	var (
		user *users.User
		err  error
	)
	switch {
	case strings.TrimSpace(req.Email) != "":
		user, err = s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	case strings.TrimSpace(req.Username) != "":
		user, err = s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	default:
		return nil, users.NewValidationError("email", "email or username is required")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}

	return s.issue(user.ID)
}

func (s *authService) issue(userID string) (*TokenResponse, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token}, nil
}

func validateSignup(req SignupRequest) error {
	if req.Username == "" {
		return users.NewValidationError("username", "required")
	}
	if strings.ContainsAny(req.Username, " \t\n@/") {
		return users.NewValidationError("username", "must not contain whitespace, '@' or '/'")
	}
	if req.Email == "" {
		return users.NewValidationError("email", "required")
	}
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return users.NewValidationError("email", "invalid email address")
	}
	if len(req.Password) < minPasswordLength {
		return users.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	return nil
}
