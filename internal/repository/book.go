package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/libris/libris/internal/model"
)

// Common errors for book repository operations.
var (
	ErrBookNotFound = errors.New("book not found")
)

// CreateBook inserts a new book into the database.
func (r *Repository) CreateBook(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (id, title, author, published_year, genre, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.PublishedYear,
		book.Genre,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(ctx context.Context, id string) (*model.Book, error) {
	query := `
		SELECT id, title, author, published_year, genre, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by ID: %w", err)
	}

	return book, nil
}

// ListBooks retrieves a page of books ordered by creation time along with
// the total record count.
func (r *Repository) ListBooks(ctx context.Context, skip, limit int) ([]*model.Book, int64, error) {
	query := `
		SELECT id, title, author, published_year, genre, created_at, updated_at
		FROM books
		ORDER BY created_at ASC, id ASC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating books: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	return books, total, nil
}

// UpdateBook persists a book's mutable fields.
// The caller applies the patch first; this writes the full field set.
func (r *Repository) UpdateBook(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books
		SET title = $2, author = $3, published_year = $4, genre = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.PublishedYear,
		book.Genre,
		book.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBookNotFound
	}

	return nil
}

// DeleteBook removes a book from the database.
func (r *Repository) DeleteBook(ctx context.Context, id string) error {
	query := `DELETE FROM books WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBookNotFound
	}

	return nil
}

// scanBook scans a single row into a Book model.
func scanBook(row pgx.Row) (*model.Book, error) {
	var book model.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.PublishedYear,
		&book.Genre,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}
