package repository

import (
	"context"
	"sync"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/metrics"
)

const defaultAuditSize = 256

// AuditLog keeps a bounded in-memory trail of recent registration
// events. When full, the oldest entries fall off.
type AuditLog struct {
	mu      sync.RWMutex
	entries []model.RegistrationEvent
	max     int
}

// NewAuditLog creates an audit log with configuration options.
func NewAuditLog(opts ...AuditOption) *AuditLog {
	l := &AuditLog{
		max: defaultAuditSize,
	}

	for _, opt := range opts {
		opt(l)
	}

	l.entries = make([]model.RegistrationEvent, 0, l.max)
	return l
}

// Record appends an event, evicting the oldest entries beyond the bound.
func (l *AuditLog) Record(ctx context.Context, event model.RegistrationEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, event)
	if overflow := len(l.entries) - l.max; overflow > 0 {
		// Re-slice onto a fresh array so evicted entries can be collected.
		l.entries = append([]model.RegistrationEvent(nil), l.entries[overflow:]...)
	}

	metrics.UpdateAuditLogEntries(len(l.entries))
	return nil
}

// Recent returns up to n events, newest first. Returns ErrInvalidLimit
// for a non-positive n.
func (l *AuditLog) Recent(ctx context.Context, n int) ([]model.RegistrationEvent, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]model.RegistrationEvent, 0, n)
	for i := len(l.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}

// Len returns the number of retained events.
func (l *AuditLog) Len(ctx context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
