package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mergington/activities/internal/domain/model"
)

func auditEvent(i int) model.RegistrationEvent {
	return model.RegistrationEvent{
		ID:       fmt.Sprintf("evt-%d", i),
		Kind:     model.KindSignup,
		Activity: "Chess Club",
		Email:    fmt.Sprintf("student-%d@mergington.edu", i),
		At:       time.Now(),
	}
}

func TestAuditLog_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	log := NewAuditLog()

	if log.Len(ctx) != 0 {
		t.Errorf("expected empty log, got %d entries", log.Len(ctx))
	}

	for i := 0; i < 3; i++ {
		if err := log.Record(ctx, auditEvent(i)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	recent, err := log.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 events, got %d", len(recent))
	}
	// Newest first.
	if recent[0].ID != "evt-2" || recent[2].ID != "evt-0" {
		t.Errorf("expected newest-first ordering, got %v", []string{recent[0].ID, recent[1].ID, recent[2].ID})
	}
}

func TestAuditLog_Bound(t *testing.T) {
	ctx := context.Background()
	log := NewAuditLog(WithAuditSize(5))

	for i := 0; i < 12; i++ {
		if err := log.Record(ctx, auditEvent(i)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if log.Len(ctx) != 5 {
		t.Fatalf("expected log bounded at 5, got %d", log.Len(ctx))
	}

	recent, err := log.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recent[0].ID != "evt-11" {
		t.Errorf("expected newest event first, got %s", recent[0].ID)
	}
	if recent[4].ID != "evt-7" {
		t.Errorf("expected oldest retained event evt-7, got %s", recent[4].ID)
	}
}

func TestAuditLog_RecentLimit(t *testing.T) {
	ctx := context.Background()
	log := NewAuditLog()

	for i := 0; i < 4; i++ {
		if err := log.Record(ctx, auditEvent(i)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	recent, err := log.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("expected 2 events, got %d", len(recent))
	}

	if _, err := log.Recent(ctx, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
	if _, err := log.Recent(ctx, -3); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}
