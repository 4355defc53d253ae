package sink

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the HTTPSink.
type Option func(*HTTPSink)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *HTTPSink) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *HTTPSink) {
		if d > 0 {
			s.timeout = d
		}
	}
}
