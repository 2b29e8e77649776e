package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification errors.
var (
	// ErrTokenMalformed indicates the token structure or encoding is
	// invalid, or a required claim is missing.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrBadSignature indicates the signature does not match the server secret.
	ErrBadSignature = errors.New("token signature invalid")
	// ErrTokenExpired indicates the token expiry is in the past.
	ErrTokenExpired = errors.New("token expired")
)

// TokenManager issues and verifies signed bearer tokens.
// The secret and signing method are fixed at construction and never
// mutated, so issuance and verification are safe for concurrent use.
// Tokens are self-contained: verification trusts the signed claims and
// performs no store lookup, and there is no revocation before expiry.
type TokenManager struct {
	secret     []byte
	method     jwt.SigningMethod
	defaultTTL time.Duration
}

// NewTokenManager creates a TokenManager for the given secret and HMAC
// algorithm identifier (HS256, HS384 or HS512).
func NewTokenManager(secret, algorithm string, defaultTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("signing secret must not be empty")
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not a symmetric MAC", algorithm)
	}

	return &TokenManager{
		secret:     []byte(secret),
		method:     method,
		defaultTTL: defaultTTL,
	}, nil
}

// DefaultTTL returns the configured default token lifetime.
func (m *TokenManager) DefaultTTL() time.Duration {
	return m.defaultTTL
}

// Issue mints a signed token for the subject with the default lifetime.
func (m *TokenManager) Issue(subject string) (string, error) {
	return m.IssueWithTTL(subject, m.defaultTTL)
}

// IssueWithTTL mints a signed token for the subject with an explicit
// lifetime. A zero ttl produces an already-expired token.
func (m *TokenManager) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the token signature and expiry and returns the subject.
// Failures map to exactly one of ErrTokenMalformed, ErrBadSignature or
// ErrTokenExpired.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Reject any token whose alg header differs from ours,
		// including "none".
		if t.Method.Alg() != m.method.Alg() {
			return nil, ErrBadSignature
		}
		return m.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrBadSignature):
			return "", ErrBadSignature
		default:
			return "", ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", ErrTokenMalformed
	}
	if claims.Subject == "" {
		return "", ErrTokenMalformed
	}

	return claims.Subject, nil
}
