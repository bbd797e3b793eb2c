package testsignups

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/mergington/activities/pkg/logger"
)

// Constants for random selection.
const (
	selectionDivisor = 4
	duplicateDivisor = 10
)

// Constants for activity selection cases.
const (
	casePopularClub = 0
	caseSecondPick  = 1
	caseAnyClub     = 2
	caseBackHalf    = 3
)

// randomIndex returns a random index in [0, n) using crypto/rand.
func randomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateRegistrations creates the configured number of registrations with
// unique student emails. Roughly one in duplicateDivisor registrations repeats
// the previous one so the duplicate-rejection path sees traffic.
func generateRegistrations(ctx context.Context, config *Config, names []string, stats *Stats) ([]Registration, error) {
	logger.Get().Info(ctx, "generating registrations with unique student emails", logger.Int("numSignups", config.NumSignups))

	if config.NumSignups < 1 {
		return nil, fmt.Errorf("number of signups must be positive")
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no activities available to sign up for")
	}

	registrations := make([]Registration, config.NumSignups)

	// Pre-allocate student emails to ensure uniqueness
	emails := make([]string, config.NumSignups)
	for i := 0; i < config.NumSignups; i++ {
		emails[i] = "student-" + uuid.New().String() + "@mergington.edu"
	}

	// Generate registrations concurrently
	type registrationResult struct {
		index        int
		registration Registration
		err          error
	}

	resultChan := make(chan registrationResult, config.NumSignups)

	// Use worker pool for registration generation
	workerCount := minInt(config.Workers, config.NumSignups)
	signupsPerWorker := config.NumSignups / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * signupsPerWorker
		end := start + signupsPerWorker
		if worker == workerCount-1 {
			end = config.NumSignups // Last worker gets remaining registrations
		}

		go func(start, end int) {
			var previous Registration
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- registrationResult{index: i, err: ctx.Err()}
					return
				default:
					registration := Registration{
						Activity: pickActivity(names),
						Email:    emails[i],
					}
					// Repeat the previous registration occasionally; the
					// service rejects the second copy as a duplicate.
					if i > start && i%duplicateDivisor == 0 {
						registration = previous
					}
					previous = registration
					resultChan <- registrationResult{index: i, registration: registration, err: nil}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumSignups; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during registration generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate registration %d: %w", result.index, result.err)
			}
			registrations[result.index] = result.registration
		}
	}

	stats.SignupsGenerated = len(registrations)
	logger.Get().Info(ctx, "generated registrations successfully", logger.Int("count", len(registrations)))

	return registrations, nil
}

// pickActivity selects an activity with a skewed distribution. Clubs at the
// front of the catalog receive the bulk of the signups, which mirrors real
// signup behaviour and exercises fuller rosters.
func pickActivity(names []string) string {
	n := len(names)
	half := n / 2
	if half < 1 {
		half = 1
	}

	randNum, _ := rand.Int(rand.Reader, big.NewInt(selectionDivisor))
	switch randNum.Int64() {
	case casePopularClub, caseSecondPick:
		// Front half of the catalog - most common
		return names[randomIndex(half)]
	case caseBackHalf:
		// Back half of the catalog
		if half >= n {
			return names[randomIndex(n)]
		}
		return names[half+randomIndex(n-half)]
	case caseAnyClub:
		// Anywhere in the catalog
		return names[randomIndex(n)]
	default:
		return names[randomIndex(n)]
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
