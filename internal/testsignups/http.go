package testsignups

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Registration action path segments.
const (
	actionSignup     = "signup"
	actionUnregister = "unregister"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with an empty body. The registration endpoints
// take their arguments from the path and query string.
func (c *HTTPClient) Post(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// registrationURL builds the signup or unregister URL for a registration.
func registrationURL(baseURL, activity, action, email string) string {
	return baseURL + "/activities/" + url.PathEscape(activity) + "/" + action + "?email=" + url.QueryEscape(email)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitSignups submits registrations concurrently using worker pools.
// It returns a flag per registration marking which signups were accepted.
func submitSignups(ctx context.Context, config *Config, registrations []Registration, stats *Stats) ([]bool, error) {
	log.Printf("📤 Submitting %d signups with %d workers...", len(registrations), config.Workers)

	client := newHTTPClient(config.Timeout)

	// Counters for statistics
	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	// Accepted signups, indexed like registrations; each index is handled by
	// exactly one worker.
	succeeded := make([]bool, len(registrations))

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleSignup(ctx, client, config.BaseURL, registrations[index])

					// Update counters
					atomic.AddInt64(&submitted, 1)
					switch result {
					case "success":
						succeeded[index] = true
						atomic.AddInt64(&successful, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						dup := atomic.LoadInt64(&duplicate)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (success: %d, duplicate: %d, failed: %d)",
								total, len(registrations), succ, dup, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (success: %d, duplicate: %d, failed: %d)",
								total, len(registrations), succ, dup, fail)
						}
					}
				}
			}
		}()
	}

	// Send registration indices to workers
	go func() {
		defer close(indexChan)
		for i := range registrations {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.SignupsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SignupsSuccessful = int(atomic.LoadInt64(&successful))
	stats.SignupsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.SignupsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Signup submission completed:
   Successful: %d
   Duplicate: %d
   Failed: %d
`, stats.SignupsSuccessful, stats.SignupsDuplicate, stats.SignupsFailed)

	return succeeded, nil
}

// submitSingleSignup submits a single signup and returns the result
func submitSingleSignup(ctx context.Context, client *HTTPClient, baseURL string, registration Registration) string {
	target := registrationURL(baseURL, registration.Activity, actionSignup, registration.Email)

	resp, err := client.Post(ctx, target)
	if err != nil {
		return "failed"
	}

	// Read response body
	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	// Parse response based on status code
	switch resp.StatusCode {
	case StatusOK:
		// OK - signup accepted
		return "success"
	case StatusBadRequest:
		// Bad request - an already-registered student counts as a duplicate
		var detail ErrorResponse
		if err := unmarshalJSON(body, &detail); err == nil && strings.Contains(detail.Detail, "already signed up") {
			return "duplicate"
		}
		return "failed"
	default:
		// Error
		return "failed"
	}
}

// unregisterRegistrations removes a fraction of the accepted signups so the
// unregister path sees traffic. It returns a flag per registration marking
// which signups were removed again.
func unregisterRegistrations(ctx context.Context, config *Config, registrations []Registration, succeeded []bool, stats *Stats) ([]bool, error) {
	unregistered := make([]bool, len(registrations))

	target := int(float64(stats.SignupsSuccessful) * config.UnregisterRatio)
	if target < 1 {
		log.Println("⏭️  Unregister phase skipped")
		return unregistered, nil
	}

	log.Printf("🧹 Unregistering %d of %d accepted signups with %d workers...", target, stats.SignupsSuccessful, config.Workers)

	client := newHTTPClient(config.Timeout)

	// Counters for statistics
	var (
		successful int64
		failed     int64
		submitted  int64
	)

	// Create worker pool
	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
					atomic.AddInt64(&submitted, 1)
					if unregisterSingle(ctx, client, config.BaseURL, registrations[index]) {
						unregistered[index] = true
						atomic.AddInt64(&successful, 1)
					} else {
						atomic.AddInt64(&failed, 1)
					}
				}
			}
		}()
	}

	// Send the first accepted registrations up to the target count
	go func() {
		defer close(indexChan)
		sent := 0
		for i := range registrations {
			if sent >= target {
				return
			}
			if !succeeded[i] {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
				sent++
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Update stats
	stats.UnregistersSubmitted = int(atomic.LoadInt64(&submitted))
	stats.UnregistersSuccessful = int(atomic.LoadInt64(&successful))
	stats.UnregistersFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Unregister phase completed:
   Successful: %d
   Failed: %d
`, stats.UnregistersSuccessful, stats.UnregistersFailed)

	return unregistered, nil
}

// unregisterSingle submits a single unregister request.
func unregisterSingle(ctx context.Context, client *HTTPClient, baseURL string, registration Registration) bool {
	target := registrationURL(baseURL, registration.Activity, actionUnregister, registration.Email)

	resp, err := client.Post(ctx, target)
	if err != nil {
		return false
	}

	if _, err := readResponseBody(resp); err != nil {
		return false
	}

	return resp.StatusCode == StatusOK
}
