package worker

import (
	"github.com/mergington/activities/pkg/logger"
)

// Option applies a configuration option to the RecorderWorker.
type Option func(*RecorderWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *RecorderWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(logger logger.Logger) Option {
	return func(w *RecorderWorker) {
		if logger != nil {
			w.logger = logger
		}
	}
}
