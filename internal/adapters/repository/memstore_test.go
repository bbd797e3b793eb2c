package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mergington/activities/internal/domain/model"
)

func testDefs() []model.Definition {
	return []model.Definition{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore your creativity through painting and drawing",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
		},
	}
}

func TestMemStore_SeedAndList(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testDefs())
	defer store.Close()

	if count := store.Count(ctx); count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}

	listing := store.List(ctx)
	chess, ok := listing["Chess Club"]
	if !ok {
		t.Fatal("expected Chess Club in listing")
	}
	if chess.MaxParticipants != 12 {
		t.Errorf("expected max participants 12, got %d", chess.MaxParticipants)
	}
	if len(chess.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(chess.Participants))
	}
	if chess.Participants[0] != "michael@mergington.edu" {
		t.Errorf("expected michael@mergington.edu first, got %s", chess.Participants[0])
	}

	art, ok := listing["Art Club"]
	if !ok {
		t.Fatal("expected Art Club in listing")
	}
	if len(art.Participants) != 0 {
		t.Errorf("expected empty roster, got %v", art.Participants)
	}
}

func TestMemStore_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testDefs())
	defer store.Close()

	listing := store.List(ctx)
	listing["Chess Club"].Participants[0] = "tampered@mergington.edu"
	delete(listing, "Art Club")

	fresh := store.List(ctx)
	if fresh["Chess Club"].Participants[0] != "michael@mergington.edu" {
		t.Error("mutating a listing copy must not affect the store")
	}
	if _, ok := fresh["Art Club"]; !ok {
		t.Error("deleting from a listing copy must not affect the store")
	}
}

func TestMemStore_SeedCollapsesDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, []model.Definition{
		{
			Name:            "Chess Club",
			MaxParticipants: 12,
			Participants: []string{
				"michael@mergington.edu",
				"daniel@mergington.edu",
				"michael@mergington.edu",
			},
		},
	})
	defer store.Close()

	chess := store.List(ctx)["Chess Club"]
	if len(chess.Participants) != 2 {
		t.Errorf("expected duplicate seed email collapsed to 2 participants, got %v", chess.Participants)
	}
}

func TestMemStore_Signup(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testDefs())
	defer store.Close()

	if err := store.Signup(ctx, "Chess Club", "new@mergington.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chess := store.List(ctx)["Chess Club"]
	if len(chess.Participants) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(chess.Participants))
	}
	if chess.Participants[2] != "new@mergington.edu" {
		t.Errorf("expected new signup appended at the end, got %v", chess.Participants)
	}
}

func TestMemStore_SignupUnknownActivity(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testDefs())
	defer store.Close()

	err := store.Signup(ctx, "Ghost Club", "a@mergington.edu")
	if !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestMemStore_SignupDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testDefs())
	defer store.Close()

	err := store.Signup(ctx, "Chess Club", "michael@mergington.edu")
	if !errors.Is(err, ErrAlreadySignedUp) {
		t.Errorf("expected ErrAlreadySignedUp, got %v", err)
	}

	chess := store.List(ctx)["Chess Club"]
	if len(chess.Participants) != 2 {
		t.Errorf("duplicate signup must not grow the roster: %v", chess.Participants)
	}
}

func TestMemStore_Unregister(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testDefs())
	defer store.Close()

	if err := store.Unregister(ctx, "Chess Club", "michael@mergington.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chess := store.List(ctx)["Chess Club"]
	if len(chess.Participants) != 1 {
		t.Fatalf("expected 1 participant, got %d", len(chess.Participants))
	}
	if chess.Participants[0] != "daniel@mergington.edu" {
		t.Errorf("expected daniel@mergington.edu to remain, got %v", chess.Participants)
	}

	// A second unregister for the same email must fail.
	err := store.Unregister(ctx, "Chess Club", "michael@mergington.edu")
	if !errors.Is(err, ErrNotSignedUp) {
		t.Errorf("expected ErrNotSignedUp, got %v", err)
	}
}

func TestMemStore_UnregisterUnknownActivity(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testDefs())
	defer store.Close()

	err := store.Unregister(ctx, "Ghost Club", "michael@mergington.edu")
	if !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestMemStore_ActivityIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testDefs())
	defer store.Close()

	if err := store.Signup(ctx, "Art Club", "painter@mergington.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Unregister(ctx, "Chess Club", "daniel@mergington.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	listing := store.List(ctx)
	if len(listing["Art Club"].Participants) != 1 {
		t.Errorf("Art Club roster affected unexpectedly: %v", listing["Art Club"].Participants)
	}
	if len(listing["Chess Club"].Participants) != 1 {
		t.Errorf("Chess Club roster wrong: %v", listing["Chess Club"].Participants)
	}
}

func TestMemStore_OrderAfterInteriorRemoval(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, []model.Definition{
		{Name: "Drama Club", MaxParticipants: 20},
	})
	defer store.Close()

	emails := []string{"a@mergington.edu", "b@mergington.edu", "c@mergington.edu"}
	for _, e := range emails {
		if err := store.Signup(ctx, "Drama Club", e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := store.Unregister(ctx, "Drama Club", "a@mergington.edu"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := store.List(ctx)["Drama Club"].Participants
	want := []string{"b@mergington.edu", "c@mergington.edu"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMemStore_CapacityNotEnforced(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, []model.Definition{
		{Name: "Math Club", MaxParticipants: 2},
	})
	defer store.Close()

	// Signups beyond max_participants still succeed; the field is
	// informational only.
	for i := 0; i < 5; i++ {
		email := fmt.Sprintf("student-%d@mergington.edu", i)
		if err := store.Signup(ctx, "Math Club", email); err != nil {
			t.Fatalf("signup %d failed: %v", i, err)
		}
	}
	if got := len(store.List(ctx)["Math Club"].Participants); got != 5 {
		t.Errorf("expected 5 participants, got %d", got)
	}
}

func TestMemStore_ConcurrentDuplicateSignups(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testDefs())
	defer store.Close()

	const attempts = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Signup(ctx, "Art Club", "racer@mergington.edu"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("expected exactly one concurrent signup to win, got %d", successes)
	}
	if got := len(store.List(ctx)["Art Club"].Participants); got != 1 {
		t.Errorf("expected roster length 1, got %d", got)
	}
}

func TestMemStore_ConcurrentDistinctSignups(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testDefs())
	defer store.Close()

	const students = 100
	var wg sync.WaitGroup
	for i := 0; i < students; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			email := fmt.Sprintf("student-%d@mergington.edu", n)
			if err := store.Signup(ctx, "Art Club", email); err != nil {
				t.Errorf("signup %d failed: %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	if got := len(store.List(ctx)["Art Club"].Participants); got != students {
		t.Errorf("expected %d participants, got %d", students, got)
	}
	if got := store.Registrations(ctx); got != students+2 {
		t.Errorf("expected %d total registrations, got %d", students+2, got)
	}
}

func TestMemStore_Close(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, testDefs())

	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Close must be idempotent.
	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error on second close: %v", err)
	}
}
