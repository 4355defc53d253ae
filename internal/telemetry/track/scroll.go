package track

import (
	"math"
	"sync"
	"time"

	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/dom"
)

// Default scroll tracker thresholds.
const (
	defaultScrollDebounce    = 150 * time.Millisecond
	defaultScrollDwell       = 500 * time.Millisecond
	defaultExcessiveVelocity = 2500.0 // px/s
)

const scrollTargetID = "document"

// ScrollTracker watches scroll activity. Velocities above the excessive
// threshold emit excessive_scroll immediately. Once scrolling goes quiet for
// the debounce interval a dwell timer arms; if it survives untouched the
// tracker emits scroll_stop describing where and how the scroll ended.
type ScrollTracker struct {
	source dom.EventSource
	clock  dom.Clock
	sched  dom.Scheduler
	emit   EmitFunc

	debounce          time.Duration
	dwell             time.Duration
	excessiveVelocity float64

	mu      sync.Mutex
	started bool
	cancels []dom.CancelFunc

	timerCancel dom.CancelFunc
	lastTS      int64
	lastTop     float64
	haveLast    bool

	lastVelocity  float64
	lastDirection string
	lastPercent   float64
}

// NewScrollTracker creates a scroll tracker emitting into emit.
func NewScrollTracker(source dom.EventSource, clock dom.Clock, sched dom.Scheduler, emit EmitFunc, opts ...ScrollOption) *ScrollTracker {
	t := &ScrollTracker{
		source:            source,
		clock:             clock,
		sched:             sched,
		emit:              emit,
		debounce:          defaultScrollDebounce,
		dwell:             defaultScrollDwell,
		excessiveVelocity: defaultExcessiveVelocity,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Start attaches the scroll listener. Calling Start twice is a no-op.
func (t *ScrollTracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return
	}
	t.started = true
	t.cancels = []dom.CancelFunc{t.source.OnScroll(t.handleScroll)}
}

// Stop detaches the listener and cancels any pending dwell timer.
// Idempotent; safe without Start.
func (t *ScrollTracker) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.started = false
	cancels := t.cancels
	t.cancels = nil
	timerCancel := t.timerCancel
	t.timerCancel = nil
	t.haveLast = false
	t.mu.Unlock()

	cancelAll(cancels)
	if timerCancel != nil {
		timerCancel()
	}
}

func (t *ScrollTracker) handleScroll(e dom.ScrollEvent) {
	capture("scroll", func() {
		var excessive float64

		t.mu.Lock()
		if !t.started {
			t.mu.Unlock()
			return
		}

		if t.haveLast {
			dt := float64(e.TS-t.lastTS) / 1000.0
			if dt > 0 {
				delta := e.Top - t.lastTop
				t.lastVelocity = math.Abs(delta) / dt
				switch {
				case delta > 0:
					t.lastDirection = "down"
				case delta < 0:
					t.lastDirection = "up"
				default:
					t.lastDirection = "none"
				}
				if t.lastVelocity > t.excessiveVelocity {
					excessive = t.lastVelocity
				}
			}
		} else {
			t.lastDirection = "none"
		}

		t.lastTS = e.TS
		t.lastTop = e.Top
		t.lastPercent = scrollPercent(e)
		t.haveLast = true

		// A fresh scroll voids any pending stop detection.
		if t.timerCancel != nil {
			t.timerCancel()
		}
		t.timerCancel = t.sched.After(t.debounce, t.onQuiet)
		t.mu.Unlock()

		if excessive > 0 {
			dispatch(t.emit, model.TelemetryEvent{
				TS:       e.TS,
				Kind:     model.KindExcessiveScroll,
				TargetID: scrollTargetID,
				Metadata: map[string]any{"velocity": excessive},
			})
		}
	})
}

// onQuiet fires after the debounce interval with no scroll. It arms the
// dwell timer; the scroll only counts as a stop if the user keeps lingering.
func (t *ScrollTracker) onQuiet() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return
	}
	t.timerCancel = t.sched.After(t.dwell, t.onDwell)
}

func (t *ScrollTracker) onDwell() {
	t.mu.Lock()
	if !t.started || !t.haveLast {
		t.mu.Unlock()
		return
	}
	event := model.TelemetryEvent{
		TS:       dom.NowMillis(t.clock),
		Kind:     model.KindScrollStop,
		TargetID: scrollTargetID,
		Metadata: map[string]any{
			"dwell_ms":       dom.NowMillis(t.clock) - t.lastTS,
			"scroll_percent": t.lastPercent,
			"direction":      t.lastDirection,
			"velocity":       t.lastVelocity,
		},
	}
	t.timerCancel = nil
	t.mu.Unlock()

	dispatch(t.emit, event)
}

// scrollPercent is how far down the scrollable range the viewport sits, in
// [0, 100]. A document that fits its viewport reads as fully scrolled.
func scrollPercent(e dom.ScrollEvent) float64 {
	scrollable := e.DocHeight - e.ViewportHeight
	if scrollable <= 0 {
		return 100
	}
	pct := e.Top / scrollable * 100
	return math.Min(100, math.Max(0, pct))
}
