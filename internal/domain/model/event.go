package model

import "time"

// EventKind distinguishes the two roster mutations.
type EventKind string

// Registration event kinds.
const (
	KindSignup     EventKind = "signup"
	KindUnregister EventKind = "unregister"
)

// RegistrationEvent is the audit record emitted after a successful
// signup or unregister. It flows from the app service through the event
// queue to the recorder workers.
type RegistrationEvent struct {
	ID       string    `json:"id"`
	Kind     EventKind `json:"kind"`
	Activity string    `json:"activity"`
	Email    string    `json:"email"`
	At       time.Time `json:"at"`
}
