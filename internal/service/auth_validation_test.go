package service

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRegisterValidationErrors(t *testing.T) {
	svc := &AuthService{}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"username_too_short", "ab", "hunter22", ErrInvalidUsername},
		{"username_too_long", strings.Repeat("u", maxUsernameLength+1), "hunter22", ErrInvalidUsername},
		{"username_whitespace_only", "   ", "hunter22", ErrInvalidUsername},
		{"password_too_short", "alice", "12345", ErrInvalidPassword},
		{"password_too_long", "alice", strings.Repeat("p", maxPasswordLength+1), ErrInvalidPassword},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), test.username, test.password)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestRegisterTrimsUsername(t *testing.T) {
	svc := &AuthService{}

	// Surrounding whitespace is trimmed before length validation, so a
	// padded two-character name is still rejected.
	_, err := svc.Register(context.Background(), "  ab  ", "hunter22")
	if !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
}
