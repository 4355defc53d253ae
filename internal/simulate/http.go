package simulate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopmorph/morph/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// checkServerHealth verifies the diagnostic API is running.
func checkServerHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking server health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "server is healthy")
	return nil
}

// verifyServerStats fetches /stats from the diagnostic API and logs how the
// server's view lines up with what the simulator delivered.
func verifyServerStats(ctx context.Context, config *Config, stats *Stats) error {
	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/stats")
	if err != nil {
		return fmt.Errorf("failed to fetch server stats: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read stats response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stats request failed with status: %d", resp.StatusCode)
	}

	var srv serverStats
	if err := json.Unmarshal(body, &srv); err != nil {
		return fmt.Errorf("failed to decode stats response: %w", err)
	}

	logger.Get().Info(ctx, "server state after simulation",
		logger.Any("serverStarted", srv.Started),
		logger.String("genre", srv.Genre),
		logger.String("layout", srv.Layout),
		logger.Int("serverBatches", srv.Batches),
		logger.Int("deliveredBatches", stats.BatchesDelivered))
	return nil
}
