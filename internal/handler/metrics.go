package handler

import (
	"fmt"
	"net/http"

	"github.com/libris/libris/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "libris_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "libris_logins_total{status=\"success\"} %d\n", snap.LoginSuccesses)
	writeMetric(w, "libris_logins_total{status=\"failure\"} %d\n", snap.LoginFailures)

	writeMetric(w, "libris_auth_rejected_total{reason=\"missing\"} %d\n", snap.AuthRejectedMissing)
	writeMetric(w, "libris_auth_rejected_total{reason=\"expired\"} %d\n", snap.AuthRejectedExpired)
	writeMetric(w, "libris_auth_rejected_total{reason=\"invalid\"} %d\n", snap.AuthRejectedInvalid)

	writeMetric(w, "libris_password_hash_duration_seconds_count %d\n", snap.HashDurationCount)
	writeMetric(w, "libris_password_hash_duration_seconds_sum %.6f\n", float64(snap.HashDurationTotalNs)/1e9)

	writeMetric(w, "libris_books_created_total %d\n", snap.BooksCreated)
	writeMetric(w, "libris_books_updated_total %d\n", snap.BooksUpdated)
	writeMetric(w, "libris_books_deleted_total %d\n", snap.BooksDeleted)

	writeMetric(w, "libris_book_cache_hits_total %d\n", snap.BookCacheHits)
	writeMetric(w, "libris_book_cache_misses_total %d\n", snap.BookCacheMisses)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
