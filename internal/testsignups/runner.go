package testsignups

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mergington/activities/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete signup test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting activities signup test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("signups", config.NumSignups),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Float64("unregisterRatio", config.UnregisterRatio),
		logger.Int("auditLimit", config.AuditLimit),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch the activity catalog
	baseline, err := fetchCatalog(ctx, config)
	if err != nil {
		return fmt.Errorf("catalog fetch failed: %w", err)
	}
	stats.CatalogActivities = len(baseline)

	// Step 3: Generate registrations
	registrations, err := generateRegistrations(ctx, config, catalogNames(baseline), stats)
	if err != nil {
		return fmt.Errorf("registration generation failed: %w", err)
	}

	// Step 4: Submit signups concurrently
	succeeded, err := submitSignups(ctx, config, registrations, stats)
	if err != nil {
		return fmt.Errorf("signup submission failed: %w", err)
	}

	// Step 5: Unregister a fraction of the accepted signups
	unregistered, err := unregisterRegistrations(ctx, config, registrations, succeeded, stats)
	if err != nil {
		return fmt.Errorf("unregister phase failed: %w", err)
	}

	// Step 6: Wait for the audit pipeline to drain
	logger.Get().Info(ctx, "waiting for audit events to be recorded")
	time.Sleep(AuditDrainDelay)

	// Step 7: Sample the audit trail
	audit, err := sampleAuditTrail(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("audit sampling failed: %w", err)
	}

	// Step 8: Fetch the final rosters
	final, err := fetchCatalog(ctx, config)
	if err != nil {
		return fmt.Errorf("final catalog fetch failed: %w", err)
	}

	// Step 9: Verify results
	if err := verifyResults(config, registrations, succeeded, unregistered, baseline, final, audit, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 10: Save registrations to file
	if err := saveRegistrationsToFile(ctx, config, registrations); err != nil {
		logger.Get().Warn(ctx, "failed to save registrations to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	target := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveRegistrationsToFile saves the generated registrations to a JSON file.
func saveRegistrationsToFile(ctx context.Context, config *Config, registrations []Registration) error {
	if len(registrations) == 0 {
		return fmt.Errorf("no registrations to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_signups_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write registrations to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, registration := range registrations {
		jsonData, err := marshalJSON(registration)
		if err != nil {
			return fmt.Errorf("failed to marshal registration %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write registration %d: %w", i, err)
		}

		// Add comma except for last registration
		if i < len(registrations)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "registrations saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, signupsPerSecond float64

	if stats.SignupsSubmitted > 0 {
		successRate = float64(stats.SignupsSuccessful) / float64(stats.SignupsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		signupsPerSecond = float64(stats.SignupsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("signupsGenerated", stats.SignupsGenerated),
		logger.Int("signupsSubmitted", stats.SignupsSubmitted),
		logger.Int("signupsSuccessful", stats.SignupsSuccessful),
		logger.Int("signupsDuplicate", stats.SignupsDuplicate),
		logger.Int("signupsFailed", stats.SignupsFailed),
		logger.Int("unregistersSubmitted", stats.UnregistersSubmitted),
		logger.Int("unregistersSuccessful", stats.UnregistersSuccessful),
		logger.Int("unregistersFailed", stats.UnregistersFailed),
		logger.Int("catalogActivities", stats.CatalogActivities),
		logger.Int("rosterEntries", stats.RosterEntries),
		logger.Int("auditEventsSeen", stats.AuditEventsSeen),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("signupsPerSecond", signupsPerSecond))
}
