//go:build integration

package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/libris/libris/internal/testutil"
)

// ============================================================================
// User Repository Integration Tests
// ============================================================================

func TestIntegrationUserRepository_CreateUser(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	username := testutil.UniqueUsername("create")
	user := testutil.NewTestUser(t, username)

	err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// Verify user exists in DB
	retrieved, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}

	if retrieved.Username != username {
		t.Errorf("Username mismatch: got %q, want %q", retrieved.Username, username)
	}
	if retrieved.PasswordHash != user.PasswordHash {
		t.Errorf("PasswordHash mismatch: got %q, want %q", retrieved.PasswordHash, user.PasswordHash)
	}
	if retrieved.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestIntegrationUserRepository_CreateUser_DuplicateUsername(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	username := testutil.UniqueUsername("dup")
	user1 := testutil.NewTestUser(t, username)
	user2 := testutil.NewTestUser(t, username)
	user2.ID = testutil.UniqueID("user") // Different ID, same username

	if err := repo.CreateUser(ctx, user1); err != nil {
		t.Fatalf("CreateUser (first) failed: %v", err)
	}

	err := repo.CreateUser(ctx, user2)
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("Expected ErrUsernameExists, got: %v", err)
	}
}

// Concurrent inserts of the same username must produce exactly one row.
// The unique constraint, not application logic, is the arbiter.
func TestIntegrationUserRepository_CreateUser_ConcurrentDuplicates(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	username := testutil.UniqueUsername("race")
	const attempts = 10

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := testutil.NewTestUser(t, username)
			user.ID = testutil.UniqueID("racer")
			results <- repo.CreateUser(ctx, user)
		}(i)
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrUsernameExists):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes)
	}
	if conflicts != attempts-1 {
		t.Errorf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
}

func TestIntegrationUserRepository_GetUserByUsername(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	username := testutil.UniqueUsername("lookup")
	user := testutil.NewTestUser(t, username)

	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	retrieved, err := repo.GetUserByUsername(ctx, username)
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}

	if retrieved.ID != user.ID {
		t.Errorf("ID mismatch: got %q, want %q", retrieved.ID, user.ID)
	}
}

func TestIntegrationUserRepository_GetUserByUsername_NotFound(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	_, err := repo.GetUserByUsername(ctx, "nonexistent-user")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

func TestIntegrationUserRepository_GetUserByID_NotFound(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	_, err := repo.GetUserByID(ctx, "nonexistent-id")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got: %v", err)
	}
}

// ============================================================================
// Test Environment
// ============================================================================

func newUserTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetUsersSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset users schema: %v", err)
	}

	return ctx, repo
}
