// Package sink delivers telemetry batches to the ingest endpoint.
//
// Delivery is fire-and-forget: a failed transmission is logged, counted and
// dropped. No batch is queued for retry, which bounds memory at the cost of
// data loss under sustained network failure.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// Sender delivers one batch.
type Sender interface {
	Send(ctx context.Context, batch model.TelemetryBatch) error
}

// HTTPSink posts batches as JSON to a fixed ingest URL.
type HTTPSink struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// New creates a sink posting to url.
func New(url string, opts ...Option) (*HTTPSink, error) {
	if url == "" {
		return nil, ErrEndpointRequired
	}

	s := &HTTPSink{
		url:     url,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}

	return s, nil
}

// Send posts one batch. A non-2xx answer is an error; the caller decides
// whether to log or ignore, never to retry.
func (s *HTTPSink) Send(ctx context.Context, batch model.TelemetryBatch) error {
	metrics.RecordSinkRequest()
	start := time.Now()

	body, err := json.Marshal(batch)
	if err != nil {
		metrics.RecordSinkError()
		return fmt.Errorf("encoding batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		metrics.RecordSinkError()
		return fmt.Errorf("building ingest request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.RecordSinkError()
		return fmt.Errorf("posting batch: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	metrics.RecordSinkLatency(float64(time.Since(start).Milliseconds()))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.RecordSinkError()
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	return nil
}
