package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test-secret-for-tokens", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	return m
}

func TestNewTokenManager_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		secret    string
		algorithm string
	}{
		{"empty secret", "", "HS256"},
		{"unknown algorithm", "secret", "HS257"},
		{"asymmetric algorithm", "secret", "RS256"},
		{"none algorithm", "secret", "none"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewTokenManager(tt.secret, tt.algorithm, time.Minute); err == nil {
				t.Errorf("expected error for %s, got nil", tt.name)
			}
		})
	}
}

func TestNewTokenManager_SupportedAlgorithms(t *testing.T) {
	t.Parallel()

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		if _, err := NewTokenManager("secret", alg, time.Minute); err != nil {
			t.Errorf("expected %s to be supported, got %v", alg, err)
		}
	}
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	token, err := m.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Compact serialization: three base64url segments
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(strings.Split(token, ".")))
	}

	subject, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if subject != "alice" {
		t.Errorf("expected subject 'alice', got %q", subject)
	}
}

func TestTokenManager_ZeroTTLExpires(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	token, err := m.IssueWithTTL("alice", 0)
	if err != nil {
		t.Fatalf("IssueWithTTL failed: %v", err)
	}

	// exp equals issuance time; any later verification must reject.
	time.Sleep(10 * time.Millisecond)

	if _, err := m.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	token, err := m.IssueWithTTL("alice", -time.Minute)
	if err != nil {
		t.Fatalf("IssueWithTTL failed: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := newTestManager(t)
	verifier, err := NewTokenManager("a-completely-different-secret", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Claims are valid; only the MAC differs.
	if _, err := verifier.Verify(token); !errors.Is(err, ErrBadSignature) {
		t.Errorf("expected ErrBadSignature, got %v", err)
	}
}

func TestTokenManager_TamperedPayload(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	token, err := m.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}

	// Rewrite the subject inside the payload segment, keeping the
	// original signature attached.
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	tampered := strings.Replace(string(payload), "alice", "mallory", 1)
	if tampered == string(payload) {
		t.Fatal("payload tampering had no effect")
	}
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(tampered))

	if _, err := m.Verify(strings.Join(parts, ".")); !errors.Is(err, ErrBadSignature) {
		t.Errorf("expected ErrBadSignature for tampered payload, got %v", err)
	}
}

func TestTokenManager_Malformed(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "abc.def"},
		{"invalid base64", "!!!.@@@.###"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := m.Verify(tt.token); !errors.Is(err, ErrTokenMalformed) {
				t.Errorf("expected ErrTokenMalformed, got %v", err)
			}
		})
	}
}

func TestTokenManager_MissingSubject(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	token, err := m.Issue("")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Structurally valid and well signed, but no sub claim.
	if _, err := m.Verify(token); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed for missing subject, got %v", err)
	}
}
