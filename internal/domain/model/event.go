// Package model contains domain models passed between layers.
package model

// EventKind enumerates the closed set of discrete telemetry event types.
type EventKind string

// Discrete event kinds emitted by the trackers.
const (
	KindClick            EventKind = "click"
	KindHover            EventKind = "hover"
	KindHoverEnter       EventKind = "hover_enter"
	KindHoverLeave       EventKind = "hover_leave"
	KindFocus            EventKind = "focus"
	KindBlur             EventKind = "blur"
	KindEnterViewport    EventKind = "enter_viewport"
	KindLeaveViewport    EventKind = "leave_viewport"
	KindScrollStop       EventKind = "scroll_stop"
	KindExcessiveScroll  EventKind = "excessive_scroll"
	KindClickRage        EventKind = "click_rage"
	KindDeadClick        EventKind = "dead_click"
	KindClickError       EventKind = "click_error"
	KindVisibilityChange EventKind = "visibility_change"
)

// Position is a screen-space coordinate attached to positional events.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TelemetryEvent is one discrete interaction observation. Immutable once
// created; its lifetime ends when it is flushed into a batch.
type TelemetryEvent struct {
	TS         int64          `json:"ts"` // milliseconds
	Kind       EventKind      `json:"type"`
	TargetID   string         `json:"target_id"`
	DurationMS int64          `json:"duration_ms,omitempty"`
	Position   *Position      `json:"position,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
