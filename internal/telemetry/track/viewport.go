package track

import (
	"sync"

	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/dom"
)

type watchedElement struct {
	el      dom.Element
	visible bool
}

// ViewportTracker emits enter_viewport and leave_viewport per tracked
// element using a geometry membership test against the scroll viewport, not
// polling. Elements inserted after setup are picked up through the document
// watcher, so modules loaded by infinite scroll are still observed.
type ViewportTracker struct {
	source  dom.EventSource
	watcher dom.DocumentWatcher
	emit    EmitFunc

	mu      sync.Mutex
	started bool
	cancels []dom.CancelFunc
	watched map[string]*watchedElement
}

// NewViewportTracker creates a viewport tracker emitting into emit.
func NewViewportTracker(source dom.EventSource, watcher dom.DocumentWatcher, emit EmitFunc) *ViewportTracker {
	return &ViewportTracker{
		source:  source,
		watcher: watcher,
		emit:    emit,
		watched: make(map[string]*watchedElement),
	}
}

// Start attaches the scroll listener and the insertion watcher.
func (t *ViewportTracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return
	}
	t.started = true
	t.cancels = []dom.CancelFunc{
		t.source.OnScroll(t.handleScroll),
		t.watcher.OnElementAdded(t.handleAdded),
	}
}

// Stop detaches listeners and drops all element references so detached
// nodes are not kept alive.
func (t *ViewportTracker) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.started = false
	cancels := t.cancels
	t.cancels = nil
	t.watched = make(map[string]*watchedElement)
	t.mu.Unlock()

	cancelAll(cancels)
}

// Observe registers el for membership tracking. Elements without a stable
// identifier are ignored.
func (t *ViewportTracker) Observe(el dom.Element) {
	capture("viewport", func() {
		id := elementKey(el)
		if id == "" {
			return
		}

		t.mu.Lock()
		defer t.mu.Unlock()
		if _, ok := t.watched[id]; ok {
			return
		}
		t.watched[id] = &watchedElement{el: el}
	})
}

// Watched returns the number of elements currently observed.
func (t *ViewportTracker) Watched() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.watched)
}

func (t *ViewportTracker) handleAdded(el dom.Element) {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()
	if !started {
		return
	}
	t.Observe(el)
}

func (t *ViewportTracker) handleScroll(e dom.ScrollEvent) {
	capture("viewport", func() {
		viewport := dom.Rect{
			Top:    e.Top,
			Left:   0,
			Width:  e.ViewportWidth,
			Height: e.ViewportHeight,
		}

		var events []model.TelemetryEvent

		t.mu.Lock()
		if !t.started {
			t.mu.Unlock()
			return
		}
		for id, w := range t.watched {
			visible := w.el.Bounds().Intersects(viewport)
			if visible == w.visible {
				continue
			}
			w.visible = visible

			kind := model.KindLeaveViewport
			if visible {
				kind = model.KindEnterViewport
			}
			events = append(events, model.TelemetryEvent{
				TS:       e.TS,
				Kind:     kind,
				TargetID: id,
			})
		}
		t.mu.Unlock()

		for _, event := range events {
			dispatch(t.emit, event)
		}
	})
}

// elementKey picks the stable identifier membership events are keyed by.
func elementKey(el dom.Element) string {
	if id := el.TrackID(); id != "" {
		return id
	}
	return el.ID()
}
