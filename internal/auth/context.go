// Package auth provides password hashing and bearer token utilities.
package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// subjectContextKey is the context key for the authenticated principal.
	subjectContextKey contextKey = "auth_subject"
)

// ContextWithSubject adds the authenticated username to the context.
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectContextKey, subject)
}

// SubjectFromContext retrieves the authenticated username from the context.
// Returns empty string if the request was not authenticated.
func SubjectFromContext(ctx context.Context) string {
	subject, ok := ctx.Value(subjectContextKey).(string)
	if !ok {
		return ""
	}
	return subject
}

// MustSubjectFromContext retrieves the authenticated username from the
// context. Panics if not present (use only when auth middleware has run).
func MustSubjectFromContext(ctx context.Context) string {
	subject := SubjectFromContext(ctx)
	if subject == "" {
		panic("auth subject not found - ensure auth middleware is applied")
	}
	return subject
}
