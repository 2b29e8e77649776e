// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/libris/libris/internal/auth"
	"github.com/libris/libris/internal/metrics"
	"github.com/libris/libris/internal/model"
	"github.com/libris/libris/internal/repository"
)

// Auth service errors.
var (
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. Callers must not distinguish the two, to avoid
	// username enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
	maxPasswordLength = 256
)

// TokenIssuer mints bearer tokens for authenticated principals.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	repo    *repository.Repository
	tokens  TokenIssuer
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.Repository, tokens TokenIssuer, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		repo:    repo,
		tokens:  tokens,
		metrics: recorder,
	}
}

// Register creates a new user with a hashed password.
// Uniqueness is enforced by the store's constraint rather than a
// check-then-insert, so a duplicate registration fails atomically and
// leaves no partial record.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	start := time.Now()
	hash, err := auth.HashPassword(password)
	s.metrics.ObserveHashDuration(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// LoginOutput carries the minted token for a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
}

// Login verifies the credentials and mints a bearer token.
// The failure is identical whether the username is unknown or the
// password mismatches.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		s.metrics.IncLoginFailure()
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	start := time.Now()
	match, err := auth.VerifyPassword(password, user.PasswordHash)
	s.metrics.ObserveHashDuration(time.Since(start))
	// A malformed stored hash is a non-match, never an error surfaced
	// into the auth decision.
	if err != nil || !match {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLoginSuccess()

	return &LoginOutput{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

func validateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return ErrInvalidUsername
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}
