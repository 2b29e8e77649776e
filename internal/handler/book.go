package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/libris/libris/internal/handler/dto"
	"github.com/libris/libris/internal/service"
)

// BookHandler handles HTTP requests for book operations.
type BookHandler struct {
	svc    *service.BookService
	logger *slog.Logger
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(svc *service.BookService, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	book, err := h.svc.CreateBook(r.Context(), service.CreateBookInput{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
		Genre:         req.Genre,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("book_created",
		"book_id", book.ID,
		"title", book.Title,
	)

	writeJSON(w, http.StatusOK, dto.ToBookResponse(book))
}

// Get handles GET /books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Book ID is required")
		return
	}

	book, err := h.svc.GetBook(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBookResponse(book))
}

// List handles GET /books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	skip := 0
	if s := query.Get("skip"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed >= 0 {
			skip = parsed
		}
	}

	limit := 10
	if l := query.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	result, err := h.svc.ListBooks(r.Context(), service.ListBooksInput{
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBookListResponse(result.Books, result.Total))
}

// Update handles PUT /books/{id}. Absent fields keep their stored values.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Book ID is required")
		return
	}

	var req dto.UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	book, err := h.svc.UpdateBook(r.Context(), id, req.Patch())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("book_updated",
		"book_id", book.ID,
		"title", book.Title,
	)

	writeJSON(w, http.StatusOK, dto.ToBookResponse(book))
}

// Delete handles DELETE /books/{id}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Book ID is required")
		return
	}

	if err := h.svc.DeleteBook(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("book_deleted", "book_id", id)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Book deleted"})
}

// handleServiceError maps service errors to HTTP responses.
func (h *BookHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		h.writeError(w, http.StatusNotFound, "BOOK_NOT_FOUND", "Book not found")
	case errors.Is(err, service.ErrTitleRequired):
		h.writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Title is required")
	case errors.Is(err, service.ErrAuthorRequired):
		h.writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Author is required")
	case errors.Is(err, service.ErrFieldTooLong):
		h.writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Field exceeds maximum length")
	case errors.Is(err, service.ErrInvalidYear):
		h.writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Published year is out of range")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *BookHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
