package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/libris/libris/internal/cache"
	"github.com/libris/libris/internal/metrics"
	"github.com/libris/libris/internal/model"
	"github.com/libris/libris/internal/repository"
)

// Book service errors.
var (
	ErrBookNotFound   = errors.New("book not found")
	ErrTitleRequired  = errors.New("title is required")
	ErrAuthorRequired = errors.New("author is required")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidYear    = errors.New("published_year is out of range")
)

const (
	maxTitleLength  = 255
	maxAuthorLength = 255
	maxGenreLength  = 100
	minBookYear     = 0
	maxBookYear     = 9999

	defaultListLimit = 10
	maxListLimit     = 100
)

// BookService handles book catalog business logic.
type BookService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	metrics metrics.Recorder
}

// NewBookService creates a new BookService.
func NewBookService(repo *repository.Repository, cacheClient *cache.Cache, recorder metrics.Recorder) *BookService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &BookService{
		repo:    repo,
		cache:   cacheClient,
		metrics: recorder,
	}
}

// CreateBookInput defines input for creating a book.
type CreateBookInput struct {
	Title         string
	Author        string
	PublishedYear *int
	Genre         *string
}

// CreateBook validates the input and persists a new book.
func (s *BookService) CreateBook(ctx context.Context, input CreateBookInput) (*model.Book, error) {
	if err := validateBookFields(input.Title, input.Author, input.PublishedYear, input.Genre); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	book := &model.Book{
		ID:            ulid.Make().String(),
		Title:         input.Title,
		Author:        input.Author,
		PublishedYear: input.PublishedYear,
		Genre:         input.Genre,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.metrics.IncBookCreated()

	return book, nil
}

// GetBook retrieves a book by ID, cache first.
func (s *BookService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	if book, err := s.cache.GetBook(ctx, id); err == nil {
		s.metrics.IncBookCacheHit()
		return book, nil
	}
	if s.cache.IsBookNegative(ctx, id) {
		s.metrics.IncBookCacheHit()
		return nil, ErrBookNotFound
	}
	s.metrics.IncBookCacheMiss()

	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			_ = s.cache.SetBookNegative(ctx, id)
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	// Best effort - a failed cache write only costs the next lookup.
	_ = s.cache.SetBook(ctx, book)

	return book, nil
}

// ListBooksInput defines input for listing books.
type ListBooksInput struct {
	Skip  int
	Limit int
}

// ListBooksOutput defines output for listing books.
type ListBooksOutput struct {
	Books []*model.Book
	Total int64
}

// ListBooks retrieves a page of books with the total count.
func (s *BookService) ListBooks(ctx context.Context, input ListBooksInput) (*ListBooksOutput, error) {
	if input.Skip < 0 {
		input.Skip = 0
	}
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}
	if input.Limit > maxListLimit {
		input.Limit = maxListLimit
	}

	books, total, err := s.repo.ListBooks(ctx, input.Skip, input.Limit)
	if err != nil {
		return nil, err
	}

	return &ListBooksOutput{
		Books: books,
		Total: total,
	}, nil
}

// UpdateBook applies a partial patch to a book. Absent fields stay
// unchanged; a patch with no fields set returns the stored record as is.
func (s *BookService) UpdateBook(ctx context.Context, id string, patch model.BookPatch) (*model.Book, error) {
	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	if patch.IsEmpty() {
		return book, nil
	}

	patch.Apply(book)

	if err := validateBookFields(book.Title, book.Author, book.PublishedYear, book.Genre); err != nil {
		return nil, err
	}

	book.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateBook(ctx, book); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	s.metrics.IncBookUpdated()

	// Invalidate cache
	if err := s.cache.InvalidateBook(ctx, id); err != nil {
		// Log but don't fail - eventual consistency is acceptable
		_ = err
	}

	return book, nil
}

// DeleteBook removes a book.
func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	s.metrics.IncBookDeleted()

	// Invalidate cache
	if err := s.cache.InvalidateBook(ctx, id); err != nil {
		_ = err // Log but don't fail
	}

	return nil
}

// validateBookFields checks the invariants shared by create and update.
func validateBookFields(title, author string, publishedYear *int, genre *string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if author == "" {
		return ErrAuthorRequired
	}
	if len(title) > maxTitleLength || len(author) > maxAuthorLength {
		return ErrFieldTooLong
	}
	if genre != nil && len(*genre) > maxGenreLength {
		return ErrFieldTooLong
	}
	if publishedYear != nil && (*publishedYear < minBookYear || *publishedYear > maxBookYear) {
		return ErrInvalidYear
	}
	return nil
}
