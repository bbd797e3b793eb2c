package testsignups

import "time"

// Config holds configuration for the signup test
type Config struct {
	BaseURL         string        // Base URL of the service
	NumSignups      int           // Number of signups to generate
	UnregisterRatio float64       // Fraction of accepted signups to unregister
	AuditLimit      int           // Number of audit events to sample
	Workers         int           // Number of concurrent workers
	Timeout         time.Duration // HTTP request timeout
	OutputFile      string        // Output file for registrations
	LogFile         string        // Log file for test output
	Verbose         bool          // Enable verbose logging
}

// Registration represents a signup to be submitted
type Registration struct {
	Activity string `json:"activity"`
	Email    string `json:"email"`
}

// Activity mirrors a catalog entry returned by GET /activities
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// AuditEvent mirrors an entry returned by GET /audit
type AuditEvent struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Activity string `json:"activity"`
	Email    string `json:"email"`
	At       string `json:"at"`
}

// ErrorResponse represents an error response from the registration endpoints
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Stats holds test statistics
type Stats struct {
	SignupsGenerated      int
	SignupsSubmitted      int
	SignupsSuccessful     int
	SignupsDuplicate      int
	SignupsFailed         int
	UnregistersSubmitted  int
	UnregistersSuccessful int
	UnregistersFailed     int
	CatalogActivities     int
	RosterEntries         int
	AuditEventsSeen       int
	StartTime             time.Time
	EndTime               time.Time
	Duration              time.Duration
}
