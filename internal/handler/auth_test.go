package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/libris/libris/internal/auth"
	"github.com/libris/libris/internal/service"
)

func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// No repository or token manager: these tests only exercise paths
	// that fail before either is touched.
	svc := service.NewAuthService(nil, nil, nil)
	return NewAuthHandler(svc, logger)
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	h := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["code"] != "INVALID_JSON" {
		t.Errorf("expected code INVALID_JSON, got %s", body["code"])
	}
}

func TestAuthHandler_Register_ValidationError(t *testing.T) {
	h := newAuthHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"short_username", `{"username":"ab","password":"hunter22"}`},
		{"short_password", `{"username":"alice","password":"12345"}`},
		{"empty_body", `{}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(test.body))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("expected status 422, got %d", rec.Code)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body["code"] != "VALIDATION_ERROR" {
				t.Errorf("expected code VALIDATION_ERROR, got %s", body["code"])
			}
		})
	}
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	h := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("not json at all"))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Protected(t *testing.T) {
	h := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/protected-endpoint", nil)
	req = req.WithContext(auth.ContextWithSubject(req.Context(), "alice"))
	rec := httptest.NewRecorder()

	h.Protected(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	want := "Hello alice, you have access to this protected endpoint."
	if body["message"] != want {
		t.Errorf("expected message %q, got %q", want, body["message"])
	}
}
