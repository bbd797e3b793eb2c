// Package worker defines worker contracts for asynchronous audit recording
// and notification delivery.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/mergington/activities/internal/adapters/mq/queue"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount    = 2
	metricsUpdateInterval = 5 * time.Second
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Event abstracts what workers read off the queue.
// Using the model.RegistrationEvent type for consistency.
type Event = model.RegistrationEvent

// Recorder persists a registration event into the audit trail.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// Notifier delivers a confirmation for a registration event. Delivery is
// best effort; failures are logged and never block recording.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker processes registration events using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining events before stopping.
	Shutdown(ctx context.Context) error
}

// RecorderWorker implements Worker for audit recording.
type RecorderWorker struct {
	queue    Queue
	recorder Recorder
	notifier Notifier
	name     string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewRecorderWorker creates a new worker with configuration options.
func NewRecorderWorker(queue Queue, recorder Recorder, notifier Notifier, opts ...Option) *RecorderWorker {
	w := &RecorderWorker{
		queue:    queue,
		recorder: recorder,
		notifier: notifier,
		name:     "recorder", // default name
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("recorder"), // will be updated by options
	}

	// Apply all options
	for _, opt := range opts {
		opt(w)
	}

	// Set up logger with worker name if not already set
	if w.name != "recorder" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *RecorderWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	eventChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-eventChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			// Process the event
			if err := w.processEvent(ctx, event); err != nil {
				w.logger.Error(ctx, "error processing event", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *RecorderWorker) Shutdown(ctx context.Context) error {
	// Signal shutdown
	close(w.shutdown)

	// Wait for worker to finish or context to timeout
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processEvent records a single event and fires the optional notification.
func (w *RecorderWorker) processEvent(ctx context.Context, event queue.Event) error {
	start := time.Now()

	if err := w.recorder.Record(ctx, event); err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "audit record failed for event",
			logger.String("eventID", event.ID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to record event %s: %w", event.ID, err)
	}

	metrics.RecordAuditRecorded()
	metrics.RecordWorkerLatency(float64(time.Since(start).Milliseconds()))

	// Notification delivery must never fail the audit trail.
	if w.notifier != nil {
		if err := w.notifier.Notify(ctx, event); err != nil {
			metrics.RecordNotificationError()
			w.logger.Warn(ctx, "notification failed for event",
				logger.String("eventID", event.ID),
				logger.String("email", event.Email),
				logger.Error(err),
			)
		} else {
			metrics.RecordNotificationSent()
		}
	}

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers  []*RecorderWorker
	queue    Queue
	recorder Recorder
	notifier Notifier

	// Shutdown control
	shutdown chan struct{}
	stopOnce sync.Once

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, recorder Recorder, notifier Notifier) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	pool := &Pool{
		workers:  make([]*RecorderWorker, workerCount),
		queue:    queue,
		recorder: recorder,
		notifier: notifier,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("recorder-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewRecorderWorker(
			queue,
			recorder,
			notifier,
			WithName("recorder-"+strconv.Itoa(i)),
		)
	}

	// Initialize worker metrics
	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}

	// Start metrics updater
	go p.startMetricsUpdater(ctx)
}

// startMetricsUpdater keeps the queue depth gauge fresh while the queue is
// idle. Len refreshes the gauge as a side effect.
func (p *Pool) startMetricsUpdater(ctx context.Context) {
	sampler, ok := p.queue.(interface{ Len(ctx context.Context) int })
	if !ok {
		return
	}

	ticker := time.NewTicker(metricsUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			sampler.Len(ctx)
		}
	}
}

// Stop waits for all workers to finish. The queue must be closed first so
// workers drain the remaining events and exit.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.shutdown) })

	// Wait for all workers to finish
	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue to stop new events
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	p.stopOnce.Do(func() { close(p.shutdown) })

	// Wait for all workers to finish or context to timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
