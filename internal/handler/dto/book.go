// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/libris/libris/internal/model"
)

// CreateBookRequest represents the request body for creating a book.
type CreateBookRequest struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	PublishedYear *int    `json:"published_year,omitempty"`
	Genre         *string `json:"genre,omitempty"`
}

// UpdateBookRequest represents the request body for a partial update.
// An absent field leaves the stored value unchanged.
type UpdateBookRequest struct {
	Title         *string `json:"title,omitempty"`
	Author        *string `json:"author,omitempty"`
	PublishedYear *int    `json:"published_year,omitempty"`
	Genre         *string `json:"genre,omitempty"`
}

// Patch converts the request into a model patch.
func (r *UpdateBookRequest) Patch() model.BookPatch {
	return model.BookPatch{
		Title:         r.Title,
		Author:        r.Author,
		PublishedYear: r.PublishedYear,
		Genre:         r.Genre,
	}
}

// BookResponse represents a book in API responses.
type BookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedYear *int      `json:"published_year,omitempty"`
	Genre         *string   `json:"genre,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookListResponse represents a paginated list of books.
type BookListResponse struct {
	Data  []BookResponse `json:"data"`
	Total int64          `json:"total"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToBookResponse converts a Book model to BookResponse DTO.
func ToBookResponse(book *model.Book) *BookResponse {
	return &BookResponse{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		PublishedYear: book.PublishedYear,
		Genre:         book.Genre,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
}

// ToBookListResponse converts a slice of Book models to BookListResponse.
func ToBookListResponse(books []*model.Book, total int64) *BookListResponse {
	responses := make([]BookResponse, len(books))
	for i, book := range books {
		responses[i] = *ToBookResponse(book)
	}
	return &BookListResponse{
		Data:  responses,
		Total: total,
	}
}
