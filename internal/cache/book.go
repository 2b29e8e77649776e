package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/libris/libris/internal/model"
)

// Cache key prefixes and TTLs.
const (
	bookKeyPrefix     = "book:"
	negCacheKeySuffix = ":neg"

	// DefaultBookTTL is the TTL for cached book records.
	DefaultBookTTL = 1 * time.Hour

	// NegativeCacheTTL is the TTL for negative cache entries.
	NegativeCacheTTL = 5 * time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// GetBook retrieves a book from cache by ID.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetBook(ctx context.Context, id string) (*model.Book, error) {
	key := bookKeyPrefix + id

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, ErrCacheMiss
	}

	var book model.Book
	if err := json.Unmarshal(data, &book); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, ErrCacheMiss
	}

	return &book, nil
}

// SetBook stores a book in cache.
func (c *Cache) SetBook(ctx context.Context, book *model.Book) error {
	key := bookKeyPrefix + book.ID

	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("marshal book: %w", err)
	}

	if err := c.client.Set(ctx, key, data, DefaultBookTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	// A fresh record supersedes any negative entry.
	c.client.Del(ctx, key+negCacheKeySuffix)

	return nil
}

// SetBookNegative marks a book ID as known-absent so repeated lookups
// for a missing record skip the database.
func (c *Cache) SetBookNegative(ctx context.Context, id string) error {
	key := bookKeyPrefix + id + negCacheKeySuffix

	if err := c.client.Set(ctx, key, "1", NegativeCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// IsBookNegative reports whether a negative entry exists for the ID.
func (c *Cache) IsBookNegative(ctx context.Context, id string) bool {
	key := bookKeyPrefix + id + negCacheKeySuffix

	n, err := c.client.Exists(ctx, key).Result()
	return err == nil && n > 0
}

// InvalidateBook removes a book (and its negative entry) from cache.
// Called on every mutation so reads never serve stale records.
func (c *Cache) InvalidateBook(ctx context.Context, id string) error {
	key := bookKeyPrefix + id

	if err := c.client.Del(ctx, key, key+negCacheKeySuffix).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}

	return nil
}
