// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/mergington/activities/internal/adapters/mq/queue"
	workerpool "github.com/mergington/activities/internal/adapters/mq/worker"
	"github.com/mergington/activities/internal/adapters/notify"
	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/internal/domain/seed"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// Service implements the API dependencies for the activity registry.
type Service struct {
	mu sync.RWMutex

	// Core components
	registry   repository.Store
	auditLog   *repository.AuditLog
	eventQueue eventqueue.Queue
	notifier   notify.Notifier
	workerPool *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	auditSize   int
	catalog     []model.Definition

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of recorder workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the registration event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithAuditSize bounds the audit log of recent registration events.
func WithAuditSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.auditSize = size
		}
	}
}

// WithCatalog sets the activity definitions that seed the registry.
func WithCatalog(defs []model.Definition) Option {
	return func(s *Service) {
		if len(defs) > 0 {
			s.catalog = defs
		}
	}
}

// WithNotifier sets the confirmation notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithStore injects a prebuilt registry store instead of seeding a new one.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.registry = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: 2,
		queueSize:   1024,
		auditSize:   256,
		catalog:     seed.Default(),
		notifier:    notify.NewNoop(),
		stopCh:      make(chan struct{}),
		logger:      nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting activity service...")

	// Initialize components
	if s.registry == nil {
		s.registry = repository.NewMemStore(ctx, s.catalog)
	}
	s.auditLog = repository.NewAuditLog(
		repository.WithAuditSize(s.auditSize),
	)
	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
		eventqueue.WithBufferSize(s.queueSize),
	)

	// Create and start the recorder pool; the audit log doubles as the
	// recorder and the notifier rides along.
	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s.auditLog, s.notifier)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "activity service started",
		logger.Int("activities", s.registry.Count(ctx)),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("auditSize", s.auditSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping activity service...")

	// Close the queue first so workers drain the remaining events.
	if q, ok := s.eventQueue.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	// Wait for workers to finish
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	// Close the registry store
	if s.registry != nil {
		if closer, ok := s.registry.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}

	// Signal cleanup loop to stop
	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "activity service stopped")
}

// List returns a deep-copied snapshot of every activity keyed by name.
func (s *Service) List(ctx context.Context) map[string]model.Activity {
	return s.registry.List(ctx)
}

// Signup registers email for the named activity and emits an audit event
// on success.
func (s *Service) Signup(ctx context.Context, activity, email string) error {
	if err := s.registry.Signup(ctx, activity, email); err != nil {
		return err
	}

	s.emit(ctx, model.KindSignup, activity, email)
	return nil
}

// Unregister removes email from the named activity and emits an audit
// event on success.
func (s *Service) Unregister(ctx context.Context, activity, email string) error {
	if err := s.registry.Unregister(ctx, activity, email); err != nil {
		return err
	}

	s.emit(ctx, model.KindUnregister, activity, email)
	return nil
}

// RecentEvents returns up to n recent registration events, newest first.
func (s *Service) RecentEvents(ctx context.Context, n int) ([]model.RegistrationEvent, error) {
	return s.auditLog.Recent(ctx, n)
}

// emit enqueues a registration event for asynchronous audit recording.
// The queue is lossy; a full queue drops the event rather than blocking
// the request.
func (s *Service) emit(ctx context.Context, kind model.EventKind, activity, email string) {
	event := model.RegistrationEvent{
		ID:       uuid.NewString(),
		Kind:     kind,
		Activity: activity,
		Email:    email,
		At:       time.Now().UTC(),
	}

	if !s.eventQueue.Enqueue(ctx, event) {
		s.logger.Debug(ctx, "audit queue full, event dropped",
			logger.String("kind", string(kind)),
			logger.String("activity", activity),
			logger.String("email", email),
		)
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"auditSize":   s.auditSize,
	}

	if s.started {
		queueLen := s.eventQueue.Len(ctx)

		stats["activities"] = s.registry.Count(ctx)
		stats["registrations"] = s.registry.Registrations(ctx)
		stats["queueLength"] = queueLen
		stats["queueCapacity"] = s.eventQueue.Cap(ctx)
		stats["auditEntries"] = s.auditLog.Len(ctx)

		// Update metrics
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
