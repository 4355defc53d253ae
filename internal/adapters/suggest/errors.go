package suggest

import "errors"

// Receiver error kinds.
var (
	// ErrEndpointRequired is returned when no suggestion URL is configured.
	ErrEndpointRequired = errors.New("suggestion endpoint required")
	// ErrAlreadyStarted is returned when Start is called on a running
	// receiver.
	ErrAlreadyStarted = errors.New("receiver already started")
)
