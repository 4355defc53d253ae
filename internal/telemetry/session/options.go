package session

import (
	"time"

	"github.com/shopmorph/morph/pkg/logger"
)

// Option applies a configuration option to the Coordinator.
type Option func(*Coordinator)

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(c *Coordinator) {
		if id != "" {
			c.id = id
		}
	}
}

// WithTabletMinWidth sets the viewport width separating tablets from
// phones.
func WithTabletMinWidth(w int) Option {
	return func(c *Coordinator) {
		if w > 0 {
			c.tabletMinWidth = w
		}
	}
}

// WithFlushInterval sets the periodic batch flush interval.
func WithFlushInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.flushInterval = d
		}
	}
}

// WithMaxBatchEvents sets the queued-event count that forces a flush.
func WithMaxBatchEvents(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.maxBatchEvents = n
		}
	}
}

// WithSampleMinInterval sets the pointer sampling throttle.
func WithSampleMinInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.sampleMinInterval = d
		}
	}
}

// WithMotorBufferCap sets the raw-sample count that forces a motion flush.
func WithMotorBufferCap(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.motorBufferCap = n
		}
	}
}

// WithHoverMin sets the minimum dwell for a hover event.
func WithHoverMin(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.hoverMin = d
		}
	}
}

// WithScrollDebounce sets the scroll quiet interval.
func WithScrollDebounce(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.scrollDebounce = d
		}
	}
}

// WithScrollDwell sets the lingering interval that produces scroll_stop.
func WithScrollDwell(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.scrollDwell = d
		}
	}
}

// WithExcessiveVelocity sets the excessive-scroll threshold in px/s.
func WithExcessiveVelocity(v float64) Option {
	return func(c *Coordinator) {
		if v > 0 {
			c.excessiveVelocity = v
		}
	}
}

// WithRageWindow sets the rage-click rolling window.
func WithRageWindow(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.rageWindow = d
		}
	}
}

// WithRageThreshold sets the rage-click count threshold.
func WithRageThreshold(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.rageThreshold = n
		}
	}
}

// WithClickErrorWindow sets the click-to-error attribution window.
func WithClickErrorWindow(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.clickErrorWindow = d
		}
	}
}

// WithLogger sets a custom logger for the coordinator.
func WithLogger(log logger.Logger) Option {
	return func(c *Coordinator) {
		if log != nil {
			c.logger = log
		}
	}
}
