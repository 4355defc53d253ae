package sink

import "errors"

// Sink error kinds.
var (
	// ErrEndpointRequired is returned when no ingest URL is configured.
	ErrEndpointRequired = errors.New("ingest endpoint required")
	// ErrRejected is returned when the ingest endpoint answers non-2xx.
	ErrRejected = errors.New("batch rejected by ingest endpoint")
)
