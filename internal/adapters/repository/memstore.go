package repository

import (
	"context"
	"sync"
	"time"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/internal/domain/roster"
	"github.com/mergington/activities/pkg/metrics"
)

// entry is the mutable registry record for one activity.
type entry struct {
	description     string
	schedule        string
	maxParticipants int
	participants    *roster.Roster
}

// MemStore is the in-memory Store implementation. A single RWMutex
// serializes roster mutations so each signup/unregister is an atomic
// read-modify-write; reads take the shared lock and return deep copies.
type MemStore struct {
	mu         sync.RWMutex
	activities map[string]*entry

	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewMemStore builds a store seeded from the catalog definitions.
// Duplicate participant emails within one definition collapse to the
// first occurrence.
func NewMemStore(ctx context.Context, defs []model.Definition, opts ...Option) *MemStore {
	s := &MemStore{
		activities:            make(map[string]*entry, len(defs)),
		metricsUpdateInterval: metrics.RefreshInterval(),
	}

	for _, opt := range opts {
		opt(s)
	}

	for _, def := range defs {
		e := &entry{
			description:     def.Description,
			schedule:        def.Schedule,
			maxParticipants: def.MaxParticipants,
			participants:    roster.New(roster.WithCapacity(def.MaxParticipants)),
		}
		for _, email := range def.Participants {
			e.participants.Add(email)
		}
		s.activities[def.Name] = e
	}

	s.stopChan = make(chan struct{})
	s.startMetricsUpdater(ctx)

	metrics.UpdateActivities(s.Count(ctx))
	metrics.UpdateRegistrations(s.Registrations(ctx))

	return s
}

// List implements Store.List.
func (s *MemStore) List(ctx context.Context) map[string]model.Activity {
	start := time.Now()
	defer func() {
		metrics.RecordListLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.Activity, len(s.activities))
	for name, e := range s.activities {
		out[name] = model.Activity{
			Description:     e.description,
			Schedule:        e.schedule,
			MaxParticipants: e.maxParticipants,
			Participants:    e.participants.Emails(),
		}
	}
	return out
}

// Signup implements Store.Signup. The existence check runs before the
// membership check so an unknown activity reports ErrActivityNotFound
// even when the email is invalid for other reasons.
func (s *MemStore) Signup(ctx context.Context, name, email string) error {
	start := time.Now()
	defer func() {
		metrics.RecordMutationLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	s.mu.Lock()
	e, ok := s.activities[name]
	if !ok {
		s.mu.Unlock()
		metrics.RecordRejection("activity_not_found")
		return ErrActivityNotFound
	}
	added := e.participants.Add(email)
	total := s.registrationsLocked()
	s.mu.Unlock()

	if !added {
		metrics.RecordRejection("already_signed_up")
		return ErrAlreadySignedUp
	}

	metrics.RecordSignup()
	metrics.UpdateRegistrations(total)
	return nil
}

// Unregister implements Store.Unregister with the same precondition
// order as Signup.
func (s *MemStore) Unregister(ctx context.Context, name, email string) error {
	start := time.Now()
	defer func() {
		metrics.RecordMutationLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	s.mu.Lock()
	e, ok := s.activities[name]
	if !ok {
		s.mu.Unlock()
		metrics.RecordRejection("activity_not_found")
		return ErrActivityNotFound
	}
	removed := e.participants.Remove(email)
	total := s.registrationsLocked()
	s.mu.Unlock()

	if !removed {
		metrics.RecordRejection("not_signed_up")
		return ErrNotSignedUp
	}

	metrics.RecordUnregistration()
	metrics.UpdateRegistrations(total)
	return nil
}

// Count implements Store.Count.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// Registrations implements Store.Registrations.
func (s *MemStore) Registrations(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registrationsLocked()
}

// registrationsLocked sums roster sizes. Callers must hold mu.
func (s *MemStore) registrationsLocked() int {
	total := 0
	for _, e := range s.activities {
		total += e.participants.Len()
	}
	return total
}

// Close stops the background metrics goroutine.
func (s *MemStore) Close() error {
	select {
	case <-s.stopChan:
		// already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// startMetricsUpdater refreshes registry gauges at the configured interval.
func (s *MemStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateActivities(s.Count(ctx))
				metrics.UpdateRegistrations(s.Registrations(ctx))
			}
		}
	}()
}
