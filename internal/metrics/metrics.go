// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Auth metrics
	IncUserRegistered()
	IncLoginSuccess()
	IncLoginFailure()
	IncAuthRejected(reason string) // reason: "missing", "expired", "invalid"
	ObserveHashDuration(duration time.Duration)

	// Book catalog metrics
	IncBookCreated()
	IncBookUpdated()
	IncBookDeleted()
	IncBookCacheHit()
	IncBookCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
