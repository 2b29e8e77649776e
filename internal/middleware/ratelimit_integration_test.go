//go:build integration

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/libris/libris/internal/cache"
)

// TestAuthRateLimitConcurrency verifies credential-endpoint rate limiting
// under concurrent load. This test requires Redis to be running.
func TestAuthRateLimitConcurrency(t *testing.T) {
	ctx := context.Background()

	// Skip if Redis not available
	redisURL := "redis://localhost:6379"
	cacheClient, err := cache.New(ctx, redisURL)
	if err != nil {
		t.Skipf("Skipping integration test: Redis not available: %v", err)
	}
	defer cacheClient.Close()

	// Clear any existing rate limit state
	_ = cacheClient.Client().FlushDB(ctx).Err()

	// Test parameters
	testIP := "203.0.113.7"
	rpm := 10 // Low limit to trigger easily
	burst := 5

	// Track allowed vs rejected
	var allowed, rejected int64

	// Spawn 20 concurrent goroutines, each making 3 requests
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 3; j++ {
				result, err := cacheClient.CheckAuthRateLimit(ctx, testIP, rpm, burst)
				if err != nil {
					t.Errorf("CheckAuthRateLimit error: %v", err)
					return
				}
				if result.Allowed {
					atomic.AddInt64(&allowed, 1)
				} else {
					atomic.AddInt64(&rejected, 1)
				}
			}
		}()
	}

	wg.Wait()

	total := allowed + rejected
	t.Logf("Concurrency test: %d allowed, %d rejected (total: %d)", allowed, rejected, total)

	// We expect roughly burst amount to be allowed initially
	// With 60 requests total and 10 RPM (burst 5), most should be rejected
	if allowed > int64(burst+rpm) {
		t.Errorf("Too many requests allowed: %d (expected <= %d)", allowed, burst+rpm)
	}

	if rejected == 0 {
		t.Error("Expected some requests to be rejected")
	}
}

// TestRateLimitHeaders verifies rate limit headers are set correctly.
func TestRateLimitHeaders(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setRateLimitHeaders(w, 60, 45, time.Now().Add(time.Minute))
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-RateLimit-Limit") != "60" {
		t.Errorf("Expected X-RateLimit-Limit=60, got %s", rec.Header().Get("X-RateLimit-Limit"))
	}

	if rec.Header().Get("X-RateLimit-Remaining") != "45" {
		t.Errorf("Expected X-RateLimit-Remaining=45, got %s", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

// Test429Response verifies the rate limit error response format.
func Test429Response(t *testing.T) {
	rec := httptest.NewRecorder()
	writeRateLimitError(rec, 5*time.Second)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rec.Code)
	}

	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON content type")
	}

	body := rec.Body.String()
	if len(body) == 0 {
		t.Error("Expected error body")
	}
}
