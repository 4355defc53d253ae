package track

import (
	"sync"
	"time"

	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/dom"
)

// defaultHoverMin filters incidental pass-through hovers from deliberate
// dwell.
const defaultHoverMin = 200 * time.Millisecond

// InteractionTracker emits click, focus, blur and hover events. Targets are
// resolved to the nearest trackable ancestor before emission, and hovers are
// bookkept per target id so a hover event with its duration fires only when
// dwell meets the minimum threshold.
type InteractionTracker struct {
	source dom.EventSource
	emit   EmitFunc

	hoverMin time.Duration

	mu         sync.Mutex
	started    bool
	cancels    []dom.CancelFunc
	hoverStart map[string]int64
}

// NewInteractionTracker creates an interaction tracker emitting into emit.
func NewInteractionTracker(source dom.EventSource, emit EmitFunc, opts ...InteractionOption) *InteractionTracker {
	t := &InteractionTracker{
		source:     source,
		emit:       emit,
		hoverMin:   defaultHoverMin,
		hoverStart: make(map[string]int64),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Start attaches click, focus, blur and hover listeners. Calling Start
// twice is a no-op.
func (t *InteractionTracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return
	}
	t.started = true
	t.cancels = []dom.CancelFunc{
		t.source.OnClick(t.handleClick),
		t.source.OnFocus(t.handleFocus),
		t.source.OnBlur(t.handleBlur),
		t.source.OnPointerOver(t.handleOver),
		t.source.OnPointerOut(t.handleOut),
	}
}

// Stop detaches listeners and clears hover bookkeeping. Idempotent; safe
// without Start.
func (t *InteractionTracker) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.started = false
	cancels := t.cancels
	t.cancels = nil
	t.hoverStart = make(map[string]int64)
	t.mu.Unlock()

	cancelAll(cancels)
}

func (t *InteractionTracker) handleClick(e dom.TargetEvent) {
	t.handleTargeted(model.KindClick, e)
}

func (t *InteractionTracker) handleFocus(e dom.TargetEvent) {
	t.handleTargeted(model.KindFocus, e)
}

func (t *InteractionTracker) handleBlur(e dom.TargetEvent) {
	t.handleTargeted(model.KindBlur, e)
}

func (t *InteractionTracker) handleTargeted(kind model.EventKind, e dom.TargetEvent) {
	capture("interaction", func() {
		target, id := resolveTarget(e.Target)
		if id == "" {
			return
		}

		event := model.TelemetryEvent{
			TS:       e.TS,
			Kind:     kind,
			TargetID: id,
			Position: &model.Position{X: e.X, Y: e.Y},
		}
		if ctxAttr := target.Attr("data-track-context"); ctxAttr != "" {
			event.Metadata = map[string]any{"track_context": ctxAttr}
		}
		dispatch(t.emit, event)
	})
}

func (t *InteractionTracker) handleOver(e dom.TargetEvent) {
	capture("interaction", func() {
		_, id := resolveTarget(e.Target)
		if id == "" {
			return
		}

		t.mu.Lock()
		if !t.started {
			t.mu.Unlock()
			return
		}
		// Moving between descendants of the same target keeps the
		// original dwell running.
		if _, hovering := t.hoverStart[id]; hovering {
			t.mu.Unlock()
			return
		}
		t.hoverStart[id] = e.TS
		t.mu.Unlock()

		dispatch(t.emit, model.TelemetryEvent{
			TS:       e.TS,
			Kind:     model.KindHoverEnter,
			TargetID: id,
			Position: &model.Position{X: e.X, Y: e.Y},
		})
	})
}

func (t *InteractionTracker) handleOut(e dom.TargetEvent) {
	capture("interaction", func() {
		target, id := resolveTarget(e.Target)
		if id == "" {
			return
		}

		t.mu.Lock()
		start, hovering := t.hoverStart[id]
		if hovering {
			delete(t.hoverStart, id)
		}
		t.mu.Unlock()
		if !hovering {
			return
		}

		duration := e.TS - start
		dispatch(t.emit, model.TelemetryEvent{
			TS:         e.TS,
			Kind:       model.KindHoverLeave,
			TargetID:   id,
			DurationMS: duration,
			Position:   &model.Position{X: e.X, Y: e.Y},
		})

		if duration < t.hoverMin.Milliseconds() {
			return
		}
		event := model.TelemetryEvent{
			TS:         e.TS,
			Kind:       model.KindHover,
			TargetID:   id,
			DurationMS: duration,
			Position:   &model.Position{X: e.X, Y: e.Y},
		}
		if ctxAttr := target.Attr("data-track-context"); ctxAttr != "" {
			event.Metadata = map[string]any{"track_context": ctxAttr}
		}
		dispatch(t.emit, event)
	})
}
