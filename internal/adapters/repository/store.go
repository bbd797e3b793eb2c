// Package repository defines the activity registry store interface and errors.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/model"
)

// Store provides read/write access to the activity registry.
type Store interface {
	// List returns a deep-copied snapshot of every activity keyed by name.
	List(ctx context.Context) map[string]model.Activity

	// Signup appends email to the named activity's roster.
	// Returns ErrActivityNotFound for an unknown activity and
	// ErrAlreadySignedUp when the email is already on the roster.
	Signup(ctx context.Context, name, email string) error

	// Unregister removes email from the named activity's roster.
	// Returns ErrActivityNotFound for an unknown activity and
	// ErrNotSignedUp when the email is not on the roster.
	Unregister(ctx context.Context, name, email string) error

	// Count returns the number of activities in the registry.
	Count(ctx context.Context) int

	// Registrations returns the total participant count across activities.
	Registrations(ctx context.Context) int
}
