// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers an optional YAML file and MHS_ env vars on top.
// - Keys are flat snake_case so env names map 1:1 onto koanf tags.
// - External errors must be wrapped via this package's error sentinels.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// EventQueueSize bounds the in-memory registration event queue.
	EventQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of audit recorder workers.
	WorkerCount int `koanf:"worker_count"`

	// AuditSize bounds the in-memory audit log of recent registration events.
	AuditSize int `koanf:"audit_size"`

	// SeedFile optionally points at a YAML activity catalog; when empty the
	// built-in school catalog seeds the registry.
	SeedFile string `koanf:"seed_file"`

	// NotifyEnabled turns on confirmation emails for signups and
	// unregistrations.
	NotifyEnabled bool `koanf:"notify_enabled"`

	// NotifySender is the verified SES source address. Required when
	// NotifyEnabled is true.
	NotifySender string `koanf:"notify_sender"`

	// NotifyRegion overrides the AWS region for the SES client. When empty
	// the SDK's default resolution applies.
	NotifyRegion string `koanf:"notify_region"`
}

// New creates a Config populated with defaults. Load applies file and
// environment overrides on top of these.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8000",
		EventQueueSize: 1024,
		WorkerCount:    2,
		AuditSize:      256,
		SeedFile:       "",
		NotifyEnabled:  false,
		NotifySender:   "",
		NotifyRegion:   "",
	}
}
