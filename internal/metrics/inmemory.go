package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered     uint64
	LoginSuccesses      uint64
	LoginFailures       uint64
	AuthRejectedMissing uint64
	AuthRejectedExpired uint64
	AuthRejectedInvalid uint64
	HashDurationCount   uint64
	HashDurationTotalNs int64
	BooksCreated        uint64
	BooksUpdated        uint64
	BooksDeleted        uint64
	BookCacheHits       uint64
	BookCacheMisses     uint64
}

// InMemoryRecorder stores metrics in memory for tests and the admin
// snapshot endpoint.
type InMemoryRecorder struct {
	usersRegistered     uint64
	loginSuccesses      uint64
	loginFailures       uint64
	authRejectedMissing uint64
	authRejectedExpired uint64
	authRejectedInvalid uint64
	hashDurationCount   uint64
	hashDurationTotalNs int64
	booksCreated        uint64
	booksUpdated        uint64
	booksDeleted        uint64
	bookCacheHits       uint64
	bookCacheMisses     uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:     atomic.LoadUint64(&m.usersRegistered),
		LoginSuccesses:      atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:       atomic.LoadUint64(&m.loginFailures),
		AuthRejectedMissing: atomic.LoadUint64(&m.authRejectedMissing),
		AuthRejectedExpired: atomic.LoadUint64(&m.authRejectedExpired),
		AuthRejectedInvalid: atomic.LoadUint64(&m.authRejectedInvalid),
		HashDurationCount:   atomic.LoadUint64(&m.hashDurationCount),
		HashDurationTotalNs: atomic.LoadInt64(&m.hashDurationTotalNs),
		BooksCreated:        atomic.LoadUint64(&m.booksCreated),
		BooksUpdated:        atomic.LoadUint64(&m.booksUpdated),
		BooksDeleted:        atomic.LoadUint64(&m.booksDeleted),
		BookCacheHits:       atomic.LoadUint64(&m.bookCacheHits),
		BookCacheMisses:     atomic.LoadUint64(&m.bookCacheMisses),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncAuthRejected increments the rejection counter for the given reason.
func (m *InMemoryRecorder) IncAuthRejected(reason string) {
	switch reason {
	case "missing":
		atomic.AddUint64(&m.authRejectedMissing, 1)
	case "expired":
		atomic.AddUint64(&m.authRejectedExpired, 1)
	default:
		atomic.AddUint64(&m.authRejectedInvalid, 1)
	}
}

// ObserveHashDuration records time spent hashing a password.
func (m *InMemoryRecorder) ObserveHashDuration(duration time.Duration) {
	atomic.AddUint64(&m.hashDurationCount, 1)
	atomic.AddInt64(&m.hashDurationTotalNs, duration.Nanoseconds())
}

// IncBookCreated increments the book created counter.
func (m *InMemoryRecorder) IncBookCreated() {
	atomic.AddUint64(&m.booksCreated, 1)
}

// IncBookUpdated increments the book updated counter.
func (m *InMemoryRecorder) IncBookUpdated() {
	atomic.AddUint64(&m.booksUpdated, 1)
}

// IncBookDeleted increments the book deleted counter.
func (m *InMemoryRecorder) IncBookDeleted() {
	atomic.AddUint64(&m.booksDeleted, 1)
}

// IncBookCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncBookCacheHit() {
	atomic.AddUint64(&m.bookCacheHits, 1)
}

// IncBookCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncBookCacheMiss() {
	atomic.AddUint64(&m.bookCacheMisses, 1)
}
