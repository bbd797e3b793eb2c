package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *MemStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// AuditOption applies a configuration option to the AuditLog.
type AuditOption func(*AuditLog)

// WithAuditSize bounds the number of events the audit log retains.
func WithAuditSize(size int) AuditOption {
	return func(l *AuditLog) {
		if size > 0 {
			l.max = size
		}
	}
}
