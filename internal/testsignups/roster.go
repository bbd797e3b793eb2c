package testsignups

import (
	"context"
	"fmt"
	"log"
	"sort"
)

// fetchCatalog retrieves the activity catalog with current rosters.
func fetchCatalog(ctx context.Context, config *Config) (map[string]Activity, error) {
	log.Println("📋 Fetching activity catalog...")

	client := newHTTPClient(config.Timeout)
	target := config.BaseURL + "/activities"

	resp, err := client.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != StatusOK {
		body, _ := readResponseBody(resp)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var catalog map[string]Activity
	if err := unmarshalJSON(body, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	log.Printf("✅ Retrieved %d activities", len(catalog))

	return catalog, nil
}

// catalogNames returns the activity names sorted alphabetically so the
// popularity skew in pickActivity is stable between runs.
func catalogNames(catalog map[string]Activity) []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sampleAuditTrail retrieves the most recent audit events.
func sampleAuditTrail(ctx context.Context, config *Config, stats *Stats) ([]AuditEvent, error) {
	log.Printf("🧾 Sampling the last %d audit events...", config.AuditLimit)

	client := newHTTPClient(config.Timeout)
	target := fmt.Sprintf("%s/audit?limit=%d", config.BaseURL, config.AuditLimit)

	resp, err := client.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != StatusOK {
		body, _ := readResponseBody(resp)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var events []AuditEvent
	if err := unmarshalJSON(body, &events); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.AuditEventsSeen = len(events)
	log.Printf("✅ Retrieved %d audit events", len(events))

	return events, nil
}
