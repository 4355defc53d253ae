package track

import "time"

// ScrollOption applies a configuration option to the ScrollTracker.
type ScrollOption func(*ScrollTracker)

// WithScrollDebounce sets the inactivity interval that marks a scroll as
// quiet.
func WithScrollDebounce(d time.Duration) ScrollOption {
	return func(t *ScrollTracker) {
		if d > 0 {
			t.debounce = d
		}
	}
}

// WithScrollDwell sets the lingering interval after quiet that produces a
// scroll_stop event.
func WithScrollDwell(d time.Duration) ScrollOption {
	return func(t *ScrollTracker) {
		if d > 0 {
			t.dwell = d
		}
	}
}

// WithExcessiveVelocity sets the scroll velocity, in px/s, above which
// excessive_scroll fires.
func WithExcessiveVelocity(v float64) ScrollOption {
	return func(t *ScrollTracker) {
		if v > 0 {
			t.excessiveVelocity = v
		}
	}
}

// InteractionOption applies a configuration option to the
// InteractionTracker.
type InteractionOption func(*InteractionTracker)

// WithHoverMin sets the minimum dwell for a hover event to count.
func WithHoverMin(d time.Duration) InteractionOption {
	return func(t *InteractionTracker) {
		if d > 0 {
			t.hoverMin = d
		}
	}
}

// FrustrationOption applies a configuration option to the
// FrustrationTracker.
type FrustrationOption func(*FrustrationTracker)

// WithRageWindow sets the rolling window rage clicks are counted in.
func WithRageWindow(d time.Duration) FrustrationOption {
	return func(t *FrustrationTracker) {
		if d > 0 {
			t.rageWindow = d
		}
	}
}

// WithRageThreshold sets the click count that triggers a click_rage event.
func WithRageThreshold(n int) FrustrationOption {
	return func(t *FrustrationTracker) {
		if n > 0 {
			t.rageThreshold = n
		}
	}
}

// WithClickErrorWindow sets how close behind a click an error must land to
// be attributed to it.
func WithClickErrorWindow(d time.Duration) FrustrationOption {
	return func(t *FrustrationTracker) {
		if d > 0 {
			t.clickErrorWindow = d
		}
	}
}
