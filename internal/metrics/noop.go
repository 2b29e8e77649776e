package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}

// IncAuthRejected is a no-op.
func (n *NoopRecorder) IncAuthRejected(reason string) {}

// ObserveHashDuration is a no-op.
func (n *NoopRecorder) ObserveHashDuration(duration time.Duration) {}

// IncBookCreated is a no-op.
func (n *NoopRecorder) IncBookCreated() {}

// IncBookUpdated is a no-op.
func (n *NoopRecorder) IncBookUpdated() {}

// IncBookDeleted is a no-op.
func (n *NoopRecorder) IncBookDeleted() {}

// IncBookCacheHit is a no-op.
func (n *NoopRecorder) IncBookCacheHit() {}

// IncBookCacheMiss is a no-op.
func (n *NoopRecorder) IncBookCacheMiss() {}
