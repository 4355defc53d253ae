package suggest

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/shopmorph/morph/pkg/logger"
)

// Option applies a configuration option to the Receiver.
type Option func(*Receiver)

// WithReconnectWait sets the pause between reconnection attempts.
func WithReconnectWait(d time.Duration) Option {
	return func(r *Receiver) {
		if d > 0 {
			r.reconnectWait = d
		}
	}
}

// WithDialer sets the websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(r *Receiver) {
		if d != nil {
			r.dialer = d
		}
	}
}

// WithLogger sets the receiver's logger.
func WithLogger(log logger.Logger) Option {
	return func(r *Receiver) {
		if log != nil {
			r.log = log
		}
	}
}
