package track

import (
	"sync"
	"time"

	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/dom"
)

// Default frustration detection thresholds.
const (
	defaultRageWindow       = 1000 * time.Millisecond
	defaultRageThreshold    = 3
	defaultClickErrorWindow = 100 * time.Millisecond
)

// FrustrationTracker detects rage clicks, dead clicks and click-correlated
// errors, and reports tab visibility transitions. Error attribution is a
// best-effort heuristic: an error landing within a short window of the most
// recent click is blamed on that click.
type FrustrationTracker struct {
	source dom.EventSource
	clock  dom.Clock
	emit   EmitFunc

	rageWindow       time.Duration
	rageThreshold    int
	clickErrorWindow time.Duration

	mu      sync.Mutex
	started bool
	cancels []dom.CancelFunc

	rageTarget   string
	rageStart    int64
	rageCount    int
	episodeFired bool

	lastClickTS     int64
	lastClickTarget string
	lastClickPos    model.Position
	haveClick       bool
}

// NewFrustrationTracker creates a frustration tracker emitting into emit.
func NewFrustrationTracker(source dom.EventSource, clock dom.Clock, emit EmitFunc, opts ...FrustrationOption) *FrustrationTracker {
	t := &FrustrationTracker{
		source:           source,
		clock:            clock,
		emit:             emit,
		rageWindow:       defaultRageWindow,
		rageThreshold:    defaultRageThreshold,
		clickErrorWindow: defaultClickErrorWindow,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Start attaches click, error and visibility listeners. Calling Start twice
// is a no-op.
func (t *FrustrationTracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return
	}
	t.started = true
	t.cancels = []dom.CancelFunc{
		t.source.OnClick(t.handleClick),
		t.source.OnError(t.handleError),
		t.source.OnVisibilityChange(t.handleVisibility),
	}
}

// Stop detaches listeners and resets episode bookkeeping. Idempotent; safe
// without Start.
func (t *FrustrationTracker) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.started = false
	cancels := t.cancels
	t.cancels = nil
	t.rageTarget = ""
	t.rageCount = 0
	t.episodeFired = false
	t.haveClick = false
	t.mu.Unlock()

	cancelAll(cancels)
}

func (t *FrustrationTracker) handleClick(e dom.TargetEvent) {
	capture("frustration", func() {
		_, id := resolveTarget(e.Target)
		if id == "" {
			return
		}

		var events []model.TelemetryEvent

		t.mu.Lock()
		if !t.started {
			t.mu.Unlock()
			return
		}

		// A target change or a lull longer than the window starts a new
		// episode.
		if id != t.rageTarget || e.TS-t.lastClickTS > t.rageWindow.Milliseconds() {
			t.rageTarget = id
			t.rageStart = e.TS
			t.rageCount = 0
			t.episodeFired = false
		}
		t.rageCount++

		if t.rageCount == t.rageThreshold && !t.episodeFired {
			t.episodeFired = true
			events = append(events, model.TelemetryEvent{
				TS:       e.TS,
				Kind:     model.KindClickRage,
				TargetID: id,
				Position: &model.Position{X: e.X, Y: e.Y},
				Metadata: map[string]any{
					"click_count": t.rageCount,
					"duration_ms": e.TS - t.rageStart,
				},
			})
		}

		t.lastClickTS = e.TS
		t.lastClickTarget = id
		t.lastClickPos = model.Position{X: e.X, Y: e.Y}
		t.haveClick = true
		t.mu.Unlock()

		if !isInteractive(e.Target) {
			events = append(events, model.TelemetryEvent{
				TS:       e.TS,
				Kind:     model.KindDeadClick,
				TargetID: id,
				Position: &model.Position{X: e.X, Y: e.Y},
				Metadata: map[string]any{
					"text":   e.Target.Text(),
					"cursor": e.Target.CursorStyle(),
				},
			})
		}

		for _, event := range events {
			dispatch(t.emit, event)
		}
	})
}

func (t *FrustrationTracker) handleError(e dom.ErrorEvent) {
	capture("frustration", func() {
		t.mu.Lock()
		if !t.started || !t.haveClick {
			t.mu.Unlock()
			return
		}
		elapsed := e.TS - t.lastClickTS
		if elapsed < 0 || elapsed > t.clickErrorWindow.Milliseconds() {
			t.mu.Unlock()
			return
		}
		event := model.TelemetryEvent{
			TS:       e.TS,
			Kind:     model.KindClickError,
			TargetID: t.lastClickTarget,
			Position: &model.Position{X: t.lastClickPos.X, Y: t.lastClickPos.Y},
			Metadata: map[string]any{"error": e.Message},
		}
		t.mu.Unlock()

		dispatch(t.emit, event)
	})
}

func (t *FrustrationTracker) handleVisibility(visible bool) {
	capture("frustration", func() {
		dispatch(t.emit, model.TelemetryEvent{
			TS:       dom.NowMillis(t.clock),
			Kind:     model.KindVisibilityChange,
			Metadata: map[string]any{"visible": visible},
		})
	})
}
