// Package dom defines the capability interfaces between the telemetry core
// and its host environment.
//
// The trackers never touch a real browser API: they observe an EventSource,
// schedule work on a Scheduler, and read document structure through Element
// and DocumentWatcher. Hosts bind these to their embedding (a browser
// bridge, a replay file, the built-in simulator); tests bind the fakes.
package dom

import "time"

// Rect is a rectangle in document coordinates.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Bottom returns the document-space bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Intersects reports whether two rectangles overlap vertically and
// horizontally. Zero-area rectangles never intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.Width <= 0 || r.Height <= 0 || o.Width <= 0 || o.Height <= 0 {
		return false
	}
	return r.Top < o.Bottom() && o.Top < r.Bottom() &&
		r.Left < o.Left+o.Width && o.Left < r.Left+r.Width
}

// Element is a node in the host document. Implementations may be backed by
// live DOM nodes; accessor calls can fail in exotic embeddings, which
// trackers treat as a skipped observation.
type Element interface {
	// TrackID returns the explicit tracking identifier, or "".
	TrackID() string
	// ID returns the element's plain identifier attribute, or "".
	ID() string
	// Tag returns the lowercase tag name.
	Tag() string
	// Text returns the trimmed visible text.
	Text() string
	// Attr returns a named attribute value, or "".
	Attr(name string) string
	// CursorStyle returns the computed cursor style, e.g. "pointer".
	CursorStyle() string
	// Bounds returns the element's rectangle in document coordinates.
	Bounds() Rect
	// Parent returns the parent element, or nil at the root.
	Parent() Element
}

// PointerEvent is a pointer position observation.
type PointerEvent struct {
	X  float64
	Y  float64
	TS int64 // milliseconds
}

// TargetEvent is an observation carrying the element it happened on.
type TargetEvent struct {
	Target Element
	X      float64
	Y      float64
	TS     int64
}

// ScrollEvent is one scroll observation with enough geometry for dwell and
// viewport-membership computation.
type ScrollEvent struct {
	Top            float64 // scroll offset
	DocHeight      float64
	ViewportHeight float64
	ViewportWidth  float64
	TS             int64
}

// ErrorEvent is a script error or unhandled rejection observation.
type ErrorEvent struct {
	Message string
	TS      int64
}

// CancelFunc unregisters a previously registered callback. Safe to call
// more than once.
type CancelFunc func()

// EventSource registers typed callbacks against the host's event dispatch.
// Every registration returns a cancel that must be invoked on Stop so no
// listener outlives its tracker.
type EventSource interface {
	OnPointerMove(fn func(PointerEvent)) CancelFunc
	OnPointerEnter(fn func(PointerEvent)) CancelFunc
	OnPointerLeave(fn func(PointerEvent)) CancelFunc
	OnPointerOver(fn func(TargetEvent)) CancelFunc
	OnPointerOut(fn func(TargetEvent)) CancelFunc
	OnClick(fn func(TargetEvent)) CancelFunc
	OnFocus(fn func(TargetEvent)) CancelFunc
	OnBlur(fn func(TargetEvent)) CancelFunc
	OnScroll(fn func(ScrollEvent)) CancelFunc
	OnError(fn func(ErrorEvent)) CancelFunc
	OnVisibilityChange(fn func(visible bool)) CancelFunc
}

// DocumentWatcher notifies about elements inserted after initial setup.
// The contract is that newly inserted trackable elements are observed
// within one update cycle.
type DocumentWatcher interface {
	OnElementAdded(fn func(Element)) CancelFunc
}

// Scheduler is the injected timer capability. Implementations fire
// callbacks on their own goroutine; components guard their state.
type Scheduler interface {
	// After runs fn once after d. The cancel stops a pending fire.
	After(d time.Duration, fn func()) CancelFunc
	// Every runs fn repeatedly at interval d until cancelled.
	Every(d time.Duration, fn func()) CancelFunc
}

// Clock supplies the current time, injectable for deterministic tests.
type Clock interface {
	Now() time.Time
}

// NowMillis returns c's current time as Unix milliseconds.
func NowMillis(c Clock) int64 {
	return c.Now().UnixMilli()
}

// Environment describes the host for device classification.
type Environment interface {
	UserAgent() string
	TouchCapable() bool
	ViewportWidth() int
	ViewportHeight() int
}
