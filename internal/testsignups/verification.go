package testsignups

import (
	"fmt"
	"log"
	"sort"
)

// rosterEntry pairs an activity with its final roster size for display.
type rosterEntry struct {
	Name         string
	Participants int
	Max          int
}

// verifyResults checks the final rosters against the signups the service
// accepted and spot-checks the audit trail.
func verifyResults(config *Config, registrations []Registration, succeeded, unregistered []bool, baseline, final map[string]Activity, audit []AuditEvent, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	if len(final) == 0 {
		return fmt.Errorf("no activities to verify")
	}

	// Index final rosters for membership checks
	rosters := make(map[string]map[string]bool, len(final))
	for name, activity := range final {
		members := make(map[string]bool, len(activity.Participants))
		for _, email := range activity.Participants {
			members[email] = true
		}
		rosters[name] = members
	}

	// Every accepted signup that was not unregistered must appear in the
	// final roster, and every unregistered one must be gone.
	var missing, lingering int
	for i, registration := range registrations {
		switch {
		case unregistered[i]:
			if rosters[registration.Activity][registration.Email] {
				lingering++
			}
		case succeeded[i]:
			if !rosters[registration.Activity][registration.Email] {
				missing++
			}
		}
	}

	if missing > 0 || lingering > 0 {
		log.Printf("⚠️  Roster consistency warning: %d accepted signups missing, %d unregistered students lingering", missing, lingering)
	} else {
		log.Println("✅ Roster consistency verified")
	}

	// Roster growth must match the accepted signups minus the unregistered
	// ones.
	baselineTotal := countParticipants(baseline)
	finalTotal := countParticipants(final)
	expected := baselineTotal + stats.SignupsSuccessful - stats.UnregistersSuccessful
	if finalTotal != expected {
		log.Printf("⚠️  Roster total mismatch: expected %d participants, found %d", expected, finalTotal)
	} else {
		log.Println("✅ Roster totals verified")
	}
	stats.RosterEntries = finalTotal

	// Audit trail spot checks
	if len(audit) > 0 {
		if err := verifyAuditTrail(audit); err != nil {
			log.Printf("⚠️  Audit trail warning: %v", err)
		} else {
			log.Println("✅ Audit trail verified")
		}
	}

	// Display the fullest rosters
	displayTopRosters(final, config.Verbose)

	log.Println("✅ Result verification completed")
	return nil
}

// countParticipants sums roster sizes across the catalog.
func countParticipants(catalog map[string]Activity) int {
	total := 0
	for _, activity := range catalog {
		total += len(activity.Participants)
	}
	return total
}

// verifyAuditTrail checks that the sampled audit events are well formed.
func verifyAuditTrail(audit []AuditEvent) error {
	for i, event := range audit {
		if event.Kind != "signup" && event.Kind != "unregister" {
			return fmt.Errorf("event %d has unknown kind %q", i, event.Kind)
		}
		if event.Activity == "" || event.Email == "" {
			return fmt.Errorf("event %d is missing activity or email", i)
		}
		if event.ID == "" {
			return fmt.Errorf("event %d is missing an ID", i)
		}
	}
	return nil
}

// displayTopRosters shows the fullest rosters after the run.
func displayTopRosters(final map[string]Activity, verbose bool) {
	entries := make([]rosterEntry, 0, len(final))
	for name, activity := range final {
		entries = append(entries, rosterEntry{
			Name:         name,
			Participants: len(activity.Participants),
			Max:          activity.MaxParticipants,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Participants > entries[j].Participants
	})

	topN := 10
	if len(entries) < topN {
		topN = len(entries)
	}

	log.Printf("🏆 Top %d rosters by size:", topN)
	for i := 0; i < topN; i++ {
		entry := entries[i]
		log.Printf("   %d. %s - %d signed up (capacity %d)", i+1, entry.Name, entry.Participants, entry.Max)
	}

	if verbose {
		// Show some statistics
		if len(entries) > 0 {
			avgSize := calculateAverageRoster(entries)
			maxSize := entries[0].Participants
			minSize := entries[len(entries)-1].Participants

			log.Printf(`📊 Roster statistics:
   Average: %.1f
   Largest: %d
   Smallest: %d
`, avgSize, maxSize, minSize)
		}
	}
}

// calculateAverageRoster calculates the average roster size.
func calculateAverageRoster(entries []rosterEntry) float64 {
	if len(entries) == 0 {
		return 0
	}

	sum := 0
	for _, entry := range entries {
		sum += entry.Participants
	}

	return float64(sum) / float64(len(entries))
}
