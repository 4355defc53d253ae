// Package kinematics captures pointer motion and derives kinematic state.
package kinematics

import (
	"math"
	"sync"
	"time"

	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/dom"
	"github.com/shopmorph/morph/pkg/metrics"
)

// Default sampler configuration constants.
const (
	defaultMinInterval = 16 * time.Millisecond // fixed-rate throttle, ~60 Hz
	defaultBufferCap   = 60                    // ~1s of samples at 60 Hz
)

// FlushFunc receives a completed motion run.
type FlushFunc func(run model.MotorRun)

// Sampler listens for pointer movement, downsamples it to a fixed rate and
// maintains the derived motor state. Raw samples accumulate into runs that
// flush on buffer cap or pointer leave.
type Sampler struct {
	source dom.EventSource
	clock  dom.Clock
	emit   FlushFunc

	minInterval time.Duration
	bufferCap   int
	device      model.PointerDevice

	mu           sync.Mutex
	started      bool
	cancels      []dom.CancelFunc
	buf          []model.MotorSample
	prev         *model.MotorSample
	prevVel      model.Vec2
	havePrevVel  bool
	lastAccepted int64
	state        model.MotorState
}

// New creates a sampler reading from source. Completed runs are handed to
// emit; a nil emit discards them.
func New(source dom.EventSource, clock dom.Clock, emit FlushFunc, opts ...Option) *Sampler {
	s := &Sampler{
		source:      source,
		clock:       clock,
		emit:        emit,
		minInterval: defaultMinInterval,
		bufferCap:   defaultBufferCap,
		device:      model.DeviceMouse,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start attaches pointer listeners. Calling Start twice is a no-op.
func (s *Sampler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true
	s.cancels = []dom.CancelFunc{
		s.source.OnPointerMove(s.handleMove),
		s.source.OnPointerEnter(s.handleEnter),
		s.source.OnPointerLeave(s.handleLeave),
	}
}

// Stop detaches listeners and performs a final flush. Idempotent; safe to
// call without Start.
func (s *Sampler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	cancels := s.cancels
	s.cancels = nil
	run := s.takeRunLocked()
	s.mu.Unlock()

	// Listeners go first so no sample lands after the final flush.
	for _, cancel := range cancels {
		cancel()
	}
	s.dispatch(run)
}

// handleMove accepts a sample if the minimum interval has elapsed since the
// last accepted one. This is a throttle, not a debounce: bursts are
// downsampled, never delayed.
func (s *Sampler) handleMove(e dom.PointerEvent) {
	s.mu.Lock()

	if s.lastAccepted != 0 && e.TS-s.lastAccepted < s.minInterval.Milliseconds() {
		s.mu.Unlock()
		return
	}
	s.lastAccepted = e.TS

	sample := model.MotorSample{X: e.X, Y: e.Y, TS: e.TS}
	s.deriveLocked(sample)
	s.buf = append(s.buf, sample)
	s.prev = &sample
	metrics.RecordMotorSample()

	var run model.MotorRun
	var flush bool
	if len(s.buf) >= s.bufferCap {
		run = s.takeRunLocked()
		flush = true
	}
	s.mu.Unlock()

	if flush {
		s.dispatch(run)
	}
}

// deriveLocked recomputes velocity, acceleration, speed and jerk from the
// previous sample. Without a previous sample all derivatives stay zero.
func (s *Sampler) deriveLocked(sample model.MotorSample) {
	if s.prev == nil {
		return
	}
	dt := float64(sample.TS-s.prev.TS) / 1000.0
	if dt <= 0 {
		return
	}

	vel := model.Vec2{
		X: (sample.X - s.prev.X) / dt,
		Y: (sample.Y - s.prev.Y) / dt,
	}
	var acc model.Vec2
	if s.havePrevVel {
		acc = model.Vec2{
			X: (vel.X - s.prevVel.X) / dt,
			Y: (vel.Y - s.prevVel.Y) / dt,
		}
	}

	s.state = model.MotorState{
		Velocity:     vel,
		Acceleration: acc,
		Speed:        math.Hypot(vel.X, vel.Y),
		// Jerk reuses the acceleration magnitude as the instability
		// signal; downstream thresholds are tuned against it.
		Jerk: math.Hypot(acc.X, acc.Y),
	}
	s.prevVel = vel
	s.havePrevVel = true
}

// handleEnter clears the previous-position anchor and zeroes derivatives so
// a teleported cursor (window refocus) cannot produce a spurious spike.
func (s *Sampler) handleEnter(_ dom.PointerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prev = nil
	s.havePrevVel = false
	s.prevVel = model.Vec2{}
	s.lastAccepted = 0
	s.state = model.MotorState{}
}

// handleLeave forces an immediate flush of the accumulated run.
func (s *Sampler) handleLeave(_ dom.PointerEvent) {
	s.mu.Lock()
	run := s.takeRunLocked()
	s.mu.Unlock()
	s.dispatch(run)
}

// takeRunLocked drains the buffer into a run. Returns a zero run when the
// buffer is empty.
func (s *Sampler) takeRunLocked() model.MotorRun {
	if len(s.buf) == 0 {
		return model.MotorRun{}
	}

	samples := s.buf
	s.buf = nil

	dt := s.minInterval.Milliseconds()
	if len(samples) > 1 {
		dt = (samples[len(samples)-1].TS - samples[0].TS) / int64(len(samples)-1)
	}
	return model.MotorRun{
		Device:  s.device,
		T0:      samples[0].TS,
		DT:      dt,
		Samples: samples,
	}
}

func (s *Sampler) dispatch(run model.MotorRun) {
	if len(run.Samples) == 0 || s.emit == nil {
		return
	}
	metrics.RecordMotorRun()
	s.emit(run)
}

// State returns a snapshot of the latest derived motor state.
func (s *Sampler) State() model.MotorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Velocity returns the latest velocity vector.
func (s *Sampler) Velocity() model.Vec2 { return s.State().Velocity }

// Acceleration returns the latest acceleration vector.
func (s *Sampler) Acceleration() model.Vec2 { return s.State().Acceleration }

// Speed returns the latest speed.
func (s *Sampler) Speed() float64 { return s.State().Speed }

// Jerk returns the latest jerk value.
func (s *Sampler) Jerk() float64 { return s.State().Jerk }
