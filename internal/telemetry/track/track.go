// Package track implements the discrete event trackers: scroll, viewport
// membership, interaction and frustration-pattern detection. Each tracker
// attaches to a dom.EventSource on Start, emits typed telemetry events
// through an EmitFunc, and detaches on Stop.
package track

import (
	"context"

	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/dom"
	"github.com/shopmorph/morph/pkg/logger"
	"github.com/shopmorph/morph/pkg/metrics"
)

// EmitFunc receives one captured telemetry event.
type EmitFunc func(event model.TelemetryEvent)

// interactiveTags are the native tags whose clicks count as interactive.
var interactiveTags = map[string]bool{
	"a":        true,
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"label":    true,
	"summary":  true,
}

// resolveTarget walks up from el to the nearest ancestor carrying a usable
// identity: an explicit track id, an interactive tag, or a plain id. This
// keeps nested spans inside a button from producing distinct events.
func resolveTarget(el dom.Element) (dom.Element, string) {
	for node := el; node != nil; node = node.Parent() {
		if id := node.TrackID(); id != "" {
			return node, id
		}
		if interactiveTags[node.Tag()] {
			if id := node.ID(); id != "" {
				return node, id
			}
			return node, node.Tag()
		}
		if id := node.ID(); id != "" {
			return node, id
		}
	}
	return nil, ""
}

// isInteractive reports whether el or an ancestor is structurally
// interactive: a native interactive tag, an explicit interactive marker, or
// a pointer cursor.
func isInteractive(el dom.Element) bool {
	for node := el; node != nil; node = node.Parent() {
		if interactiveTags[node.Tag()] {
			return true
		}
		if node.Attr("data-interactive") != "" {
			return true
		}
		if node.CursorStyle() == "pointer" {
			return true
		}
	}
	return false
}

// capture runs one observation handler. Element accessors can panic in
// exotic embeddings; a failed observation is skipped and counted, never
// allowed to take the host page down.
func capture(tracker string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordCaptureSkip(tracker)
			logger.Get().Warn(context.Background(), "telemetry capture skipped",
				logger.String("tracker", tracker),
				logger.Any("panic", r),
			)
		}
	}()

	fn()
}

// dispatch hands event to emit and counts it. A nil emit drops the event.
func dispatch(emit EmitFunc, event model.TelemetryEvent) {
	if emit == nil {
		return
	}
	metrics.RecordEventCaptured(string(event.Kind))
	emit(event)
}

func cancelAll(cancels []dom.CancelFunc) {
	for _, cancel := range cancels {
		cancel()
	}
}
