// Package notify delivers confirmation messages for registration events.
//
// The default implementation is a no-op; the SES-backed implementation is
// only wired in when notifications are enabled in configuration.
package notify

import (
	"context"

	"github.com/mergington/activities/internal/domain/model"
)

// Notifier sends a confirmation for a registration event.
type Notifier interface {
	Notify(ctx context.Context, event model.RegistrationEvent) error
}

// Noop is a Notifier that does nothing.
type Noop struct{}

// NewNoop creates a no-op notifier.
func NewNoop() *Noop {
	return &Noop{}
}

// Notify implements Notifier.
func (n *Noop) Notify(ctx context.Context, event model.RegistrationEvent) error {
	return nil
}
