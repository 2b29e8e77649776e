package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/libris/libris/internal/auth"
	"github.com/libris/libris/internal/metrics"
)

// TokenVerifier checks a bearer token and returns the subject it names.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger   *slog.Logger
	Verifier TokenVerifier
	Metrics  metrics.Recorder
}

// Auth returns a middleware that authenticates requests with a bearer
// token. Verification is pure: the signed claims are trusted and no
// store lookup happens. On success the subject is injected into the
// request context; every failure is a 401 with the same status, with
// the message distinguishing expired from invalid for client UX only.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthRejected("missing")
				writeAuthError(w, "Not authenticated")
				return
			}

			subject, err := cfg.Verifier.Verify(token)
			if err != nil {
				reason := "invalid"
				message := "Could not validate credentials"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "expired"
					message = "Token expired, please login again"
				}

				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthRejected(reason)
				writeAuthError(w, message)
				return
			}

			cfg.Logger.Info("authentication successful",
				slog.String("subject", subject),
				slog.String("ip", r.RemoteAddr),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithSubject(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the token from the Authorization header.
// Only the "Bearer <token>" scheme is accepted.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// writeAuthError writes a 401 Unauthorized response.
// Status never varies by failure mode; only the message does.
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `","code":"UNAUTHORIZED"}`))
}
