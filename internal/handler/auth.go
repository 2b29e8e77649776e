package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/libris/libris/internal/auth"
	"github.com/libris/libris/internal/handler/dto"
	"github.com/libris/libris/internal/service"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered",
		"user_id", user.ID,
		"username", user.Username,
	)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_logged_in", "username", req.Username)

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
	})
}

// Protected handles GET /protected-endpoint. It runs behind the auth
// middleware, so the subject is always present in the request context.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	subject := auth.MustSubjectFromContext(r.Context())

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Hello %s, you have access to this protected endpoint.", subject),
	})
}

// handleServiceError maps service errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		h.writeError(w, http.StatusConflict, "USERNAME_TAKEN", "Username already registered")
	case errors.Is(err, service.ErrInvalidUsername):
		h.writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Username must be between 3 and 50 characters")
	case errors.Is(err, service.ErrInvalidPassword):
		h.writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Password must be between 6 and 256 characters")
	case errors.Is(err, service.ErrInvalidCredentials):
		h.writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Incorrect username or password")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *AuthHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
