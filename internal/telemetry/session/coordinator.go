// Package session owns the lifetime of one telemetry capture session: a
// stable session identity, the device classification, and the wiring from
// sampler and trackers through the buffer to the ingest sink.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopmorph/morph/internal/adapters/sink"
	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/buffer"
	"github.com/shopmorph/morph/internal/telemetry/dom"
	"github.com/shopmorph/morph/internal/telemetry/kinematics"
	"github.com/shopmorph/morph/internal/telemetry/track"
	"github.com/shopmorph/morph/pkg/logger"
	"github.com/shopmorph/morph/pkg/metrics"
)

// tracker is the common lifecycle the coordinator drives.
type tracker interface {
	Start()
	Stop()
}

// Coordinator wires the capture pipeline for one session.
type Coordinator struct {
	mu sync.RWMutex

	// Capabilities
	source  dom.EventSource
	watcher dom.DocumentWatcher
	clock   dom.Clock
	sched   dom.Scheduler
	env     dom.Environment
	sender  sink.Sender

	// Configuration
	tabletMinWidth    int
	flushInterval     time.Duration
	maxBatchEvents    int
	sampleMinInterval time.Duration
	motorBufferCap    int
	hoverMin          time.Duration
	scrollDebounce    time.Duration
	scrollDwell       time.Duration
	excessiveVelocity float64
	rageWindow        time.Duration
	rageThreshold     int
	clickErrorWindow  time.Duration

	// Identity
	id     string
	device model.DeviceType

	// Components
	sampler  *kinematics.Sampler
	viewport *track.ViewportTracker
	trackers []tracker
	buf      *buffer.Buffer

	// State
	started bool
	sends   sync.WaitGroup

	logger logger.Logger
}

// New constructs a coordinator over the given host capabilities. The
// session identifier is generated here and stays stable for the
// coordinator's lifetime.
func New(source dom.EventSource, watcher dom.DocumentWatcher, clock dom.Clock, sched dom.Scheduler, env dom.Environment, sender sink.Sender, opts ...Option) *Coordinator {
	c := &Coordinator{
		source:  source,
		watcher: watcher,
		clock:   clock,
		sched:   sched,
		env:     env,
		sender:  sender,
		id:      uuid.NewString(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start classifies the device, builds the pipeline and attaches every
// listener. Calling Start twice is a no-op.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("session")
	}

	c.device = DetectDevice(c.env, c.tabletMinWidth)

	var bufOpts []buffer.Option
	if c.flushInterval > 0 {
		bufOpts = append(bufOpts, buffer.WithFlushInterval(c.flushInterval))
	}
	if c.maxBatchEvents > 0 {
		bufOpts = append(bufOpts, buffer.WithMaxEvents(c.maxBatchEvents))
	}
	c.buf = buffer.New(c.id, c.device, c.clock, c.sched, c.deliver, bufOpts...)

	var samplerOpts []kinematics.Option
	samplerOpts = append(samplerOpts, kinematics.WithDevice(pointerFor(c.env)))
	if c.sampleMinInterval > 0 {
		samplerOpts = append(samplerOpts, kinematics.WithMinInterval(c.sampleMinInterval))
	}
	if c.motorBufferCap > 0 {
		samplerOpts = append(samplerOpts, kinematics.WithBufferCap(c.motorBufferCap))
	}
	c.sampler = kinematics.New(c.source, c.clock, c.buf.AddMotorRun, samplerOpts...)

	var scrollOpts []track.ScrollOption
	if c.scrollDebounce > 0 {
		scrollOpts = append(scrollOpts, track.WithScrollDebounce(c.scrollDebounce))
	}
	if c.scrollDwell > 0 {
		scrollOpts = append(scrollOpts, track.WithScrollDwell(c.scrollDwell))
	}
	if c.excessiveVelocity > 0 {
		scrollOpts = append(scrollOpts, track.WithExcessiveVelocity(c.excessiveVelocity))
	}

	var interactionOpts []track.InteractionOption
	if c.hoverMin > 0 {
		interactionOpts = append(interactionOpts, track.WithHoverMin(c.hoverMin))
	}

	var frustrationOpts []track.FrustrationOption
	if c.rageWindow > 0 {
		frustrationOpts = append(frustrationOpts, track.WithRageWindow(c.rageWindow))
	}
	if c.rageThreshold > 0 {
		frustrationOpts = append(frustrationOpts, track.WithRageThreshold(c.rageThreshold))
	}
	if c.clickErrorWindow > 0 {
		frustrationOpts = append(frustrationOpts, track.WithClickErrorWindow(c.clickErrorWindow))
	}

	c.viewport = track.NewViewportTracker(c.source, c.watcher, c.buf.AddEvent)
	c.trackers = []tracker{
		track.NewScrollTracker(c.source, c.clock, c.sched, c.buf.AddEvent, scrollOpts...),
		c.viewport,
		track.NewInteractionTracker(c.source, c.buf.AddEvent, interactionOpts...),
		track.NewFrustrationTracker(c.source, c.clock, c.buf.AddEvent, frustrationOpts...),
	}

	c.buf.Start()
	c.sampler.Start()
	for _, t := range c.trackers {
		t.Start()
	}

	c.started = true
	metrics.RecordSessionStarted()
	c.logger.Info(ctx, "telemetry session started",
		logger.String("session_id", c.id),
		logger.String("device_type", string(c.device)),
	)

	return nil
}

// Stop detaches everything and attempts a final flush. Trackers and the
// sampler go first so no event can land after the buffer drains.
// Idempotent; safe without Start.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return
	}
	c.started = false
	trackers := c.trackers
	sampler := c.sampler
	buf := c.buf
	c.mu.Unlock()

	for _, t := range trackers {
		t.Stop()
	}
	sampler.Stop()
	buf.Stop()
	c.sends.Wait()

	metrics.RecordSessionStopped()
	c.logger.Info(context.Background(), "telemetry session stopped",
		logger.String("session_id", c.id),
		logger.Int("batches", buf.BatchCount()),
	)
}

// deliver hands one batch to the sink without blocking the capture path.
// Failures are logged and dropped; there is no retry queue.
func (c *Coordinator) deliver(batch model.TelemetryBatch) {
	if c.sender == nil {
		return
	}

	c.sends.Add(1)
	go func() {
		defer c.sends.Done()
		if err := c.sender.Send(context.Background(), batch); err != nil {
			c.logger.Warn(context.Background(), "batch delivery failed",
				logger.String("session_id", batch.SessionID),
				logger.Int("events", len(batch.Events)),
				logger.Error(err),
			)
		}
	}()
}

// ObserveModule registers a page module for viewport membership tracking.
// A no-op before Start.
func (c *Coordinator) ObserveModule(el dom.Element) {
	c.mu.RLock()
	viewport := c.viewport
	c.mu.RUnlock()

	if viewport != nil {
		viewport.Observe(el)
	}
}

// SessionID returns the stable session identifier.
func (c *Coordinator) SessionID() string { return c.id }

// DeviceType returns the classification made at Start.
func (c *Coordinator) DeviceType() model.DeviceType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.device
}

// MotorState returns the live kinematic state, zero before Start.
func (c *Coordinator) MotorState() model.MotorState {
	c.mu.RLock()
	sampler := c.sampler
	c.mu.RUnlock()

	if sampler == nil {
		return model.MotorState{}
	}
	return sampler.State()
}

// BatchCount returns the number of batches flushed so far.
func (c *Coordinator) BatchCount() int {
	c.mu.RLock()
	buf := c.buf
	c.mu.RUnlock()

	if buf == nil {
		return 0
	}
	return buf.BatchCount()
}

// Active session replacement. Re-initializing capture must stop the
// previous coordinator first so listeners cannot accumulate across
// remounts.
var (
	activeMu sync.Mutex
	active   *Coordinator
)

// Activate stops any previously active coordinator, installs c and starts
// it.
func Activate(ctx context.Context, c *Coordinator) error {
	activeMu.Lock()
	prev := active
	active = c
	activeMu.Unlock()

	if prev != nil && prev != c {
		prev.Stop()
	}
	return c.Start(ctx)
}

// Active returns the currently installed coordinator, or nil.
func Active() *Coordinator {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}

// Deactivate stops and uninstalls the active coordinator, if any.
func Deactivate() {
	activeMu.Lock()
	prev := active
	active = nil
	activeMu.Unlock()

	if prev != nil {
		prev.Stop()
	}
}
