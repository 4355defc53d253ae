// Package buffer accumulates telemetry events and motion runs and flushes
// them as batches on a timer, on size pressure, and on shutdown.
package buffer

import (
	"sync"
	"time"

	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/dom"
	"github.com/shopmorph/morph/pkg/metrics"
)

// Default flush configuration.
const (
	defaultFlushInterval = 5 * time.Second
	defaultMaxEvents     = 100
)

// SendFunc receives a completed batch. Delivery is the receiver's problem;
// the buffer never retries.
type SendFunc func(batch model.TelemetryBatch)

// Buffer collects events and motion runs for one session. Queues are
// swapped out atomically inside flush so a listener firing mid-flush can
// never observe a half-cleared queue.
type Buffer struct {
	sessionID string
	device    model.DeviceType
	clock     dom.Clock
	sched     dom.Scheduler
	send      SendFunc

	interval  time.Duration
	maxEvents int

	mu      sync.Mutex
	started bool
	cancel  dom.CancelFunc
	events  []model.TelemetryEvent
	runs    []model.MotorRun
	batches int
}

// New creates a buffer for the session identified by sessionID.
func New(sessionID string, device model.DeviceType, clock dom.Clock, sched dom.Scheduler, send SendFunc, opts ...Option) *Buffer {
	b := &Buffer{
		sessionID: sessionID,
		device:    device,
		clock:     clock,
		sched:     sched,
		send:      send,
		interval:  defaultFlushInterval,
		maxEvents: defaultMaxEvents,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Start arms the periodic flush timer. Calling Start twice is a no-op.
func (b *Buffer) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return
	}
	b.started = true
	b.cancel = b.sched.Every(b.interval, b.Flush)
}

// Stop cancels the timer and attempts a final flush. Idempotent; safe
// without Start.
func (b *Buffer) Stop() {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return
	}
	b.started = false
	cancel := b.cancel
	b.cancel = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	b.Flush()
}

// AddEvent queues one event. Hitting the size cap forces an immediate
// flush so a burst cannot grow the queue unbounded.
func (b *Buffer) AddEvent(event model.TelemetryEvent) {
	b.mu.Lock()
	b.events = append(b.events, event)
	metrics.UpdateBufferEvents(len(b.events))
	forced := len(b.events) >= b.maxEvents
	var batch model.TelemetryBatch
	var ok bool
	if forced {
		metrics.RecordFlushForced()
		batch, ok = b.takeBatchLocked()
	}
	b.mu.Unlock()

	if ok {
		b.dispatch(batch)
	}
}

// AddMotorRun queues one completed motion run.
func (b *Buffer) AddMotorRun(run model.MotorRun) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.runs = append(b.runs, run)
}

// Flush drains the queues into one batch and hands it to the sender.
// Nothing queued means nothing sent.
func (b *Buffer) Flush() {
	b.mu.Lock()
	batch, ok := b.takeBatchLocked()
	b.mu.Unlock()

	if ok {
		b.dispatch(batch)
	}
}

// BatchCount returns the number of batches flushed so far.
func (b *Buffer) BatchCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.batches
}

// Pending returns the number of queued events.
func (b *Buffer) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// takeBatchLocked swaps the queues out and builds the batch. Returns false
// when both queues are empty.
func (b *Buffer) takeBatchLocked() (model.TelemetryBatch, bool) {
	if len(b.events) == 0 && len(b.runs) == 0 {
		return model.TelemetryBatch{}, false
	}

	events := b.events
	runs := b.runs
	b.events = nil
	b.runs = nil
	b.batches++
	metrics.UpdateBufferEvents(0)

	return model.TelemetryBatch{
		SessionID:  b.sessionID,
		DeviceType: b.device,
		Timestamp:  b.clock.Now().Unix(),
		Events:     events,
		Motor:      mergeRuns(runs),
	}, true
}

func (b *Buffer) dispatch(batch model.TelemetryBatch) {
	metrics.RecordBatchFlushed(len(batch.Events))
	if b.send == nil {
		return
	}
	b.send(batch)
}

// mergeRuns folds the pending runs into one motor payload. The first run
// sets the origin and sampling interval; later samples are appended in
// order. No runs means no payload.
func mergeRuns(runs []model.MotorRun) *model.MotorPayload {
	if len(runs) == 0 {
		return nil
	}

	payload := &model.MotorPayload{
		Device: runs[0].Device,
		T0:     runs[0].T0,
		DT:     runs[0].DT,
	}
	for _, run := range runs {
		for _, s := range run.Samples {
			payload.Samples = append(payload.Samples, [2]float64{s.X, s.Y})
		}
	}
	return payload
}
