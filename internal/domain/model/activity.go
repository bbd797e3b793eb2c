// Package model contains domain models passed between layers.
package model

// Activity is the public record for one extracurricular offering.
// Field names mirror the JSON contract of GET /activities; the activity
// name is the mapping key and is not repeated inside the record.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"` // stored for display, never enforced
	Participants    []string `json:"participants"`     // unique emails in signup order
}

// Definition describes one activity in the seed catalog.
type Definition struct {
	Name            string   `koanf:"name" json:"name"`
	Description     string   `koanf:"description" json:"description"`
	Schedule        string   `koanf:"schedule" json:"schedule"`
	MaxParticipants int      `koanf:"max_participants" json:"max_participants"`
	Participants    []string `koanf:"participants" json:"participants"`
}
