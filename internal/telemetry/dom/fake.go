package dom

import (
	"sort"
	"sync"
	"time"
)

// FakeClock is a manually advanced Clock for deterministic tests and the
// simulator. Use the paired FakeScheduler to fire timers as time moves.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a clock frozen at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the frozen time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.After(c.now) {
		c.now = t
	}
}

// fakeTimer is one scheduled callback.
type fakeTimer struct {
	id        int
	due       time.Time
	interval  time.Duration
	fn        func()
	repeating bool
}

// FakeScheduler implements Scheduler against a FakeClock. Timers fire only
// when Advance moves the clock past their deadline, in chronological order,
// with the clock set to each deadline before its callback runs.
type FakeScheduler struct {
	clock  *FakeClock
	mu     sync.Mutex
	seq    int
	timers map[int]*fakeTimer
}

// NewFakeScheduler creates a scheduler bound to clock.
func NewFakeScheduler(clock *FakeClock) *FakeScheduler {
	return &FakeScheduler{
		clock:  clock,
		timers: make(map[int]*fakeTimer),
	}
}

// After registers a one-shot timer.
func (s *FakeScheduler) After(d time.Duration, fn func()) CancelFunc {
	return s.add(d, fn, false)
}

// Every registers a repeating timer.
func (s *FakeScheduler) Every(d time.Duration, fn func()) CancelFunc {
	return s.add(d, fn, true)
}

func (s *FakeScheduler) add(d time.Duration, fn func(), repeating bool) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := s.seq
	s.timers[id] = &fakeTimer{
		id:        id,
		due:       s.clock.Now().Add(d),
		interval:  d,
		fn:        fn,
		repeating: repeating,
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.timers, id)
	}
}

// Advance moves the clock forward by d, firing every due timer in
// chronological order. Callbacks run synchronously on the caller's
// goroutine, which keeps tests deterministic.
func (s *FakeScheduler) Advance(d time.Duration) {
	deadline := s.clock.Now().Add(d)

	for {
		next := s.nextDue(deadline)
		if next == nil {
			break
		}
		s.clock.set(next.due)
		next.fn()
	}
	s.clock.set(deadline)
}

// nextDue pops the earliest timer due at or before deadline, re-arming
// repeating timers. Ties fire in registration order.
func (s *FakeScheduler) nextDue(deadline time.Time) *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []*fakeTimer
	for _, t := range s.timers {
		if !t.due.After(deadline) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].due.Equal(candidates[j].due) {
			return candidates[i].id < candidates[j].id
		}
		return candidates[i].due.Before(candidates[j].due)
	})

	next := candidates[0]
	fired := *next
	if next.repeating {
		next.due = next.due.Add(next.interval)
	} else {
		delete(s.timers, next.id)
	}
	return &fired
}

// PendingTimers returns the number of armed timers.
func (s *FakeScheduler) PendingTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// FakeElement implements Element with settable fields.
type FakeElement struct {
	IDAttr      string
	TrackAttr   string
	TagName     string
	TextContent string
	Attributes  map[string]string
	Cursor      string
	Rect        Rect
	ParentEl    *FakeElement
}

func (e *FakeElement) TrackID() string { return e.TrackAttr }
func (e *FakeElement) ID() string      { return e.IDAttr }
func (e *FakeElement) Tag() string     { return e.TagName }
func (e *FakeElement) Text() string    { return e.TextContent }
func (e *FakeElement) Attr(name string) string {
	return e.Attributes[name]
}
func (e *FakeElement) CursorStyle() string { return e.Cursor }
func (e *FakeElement) Bounds() Rect        { return e.Rect }
func (e *FakeElement) Parent() Element {
	if e.ParentEl == nil {
		return nil
	}
	return e.ParentEl
}

// callbackSet is a registration table with cancelable entries.
type callbackSet[T any] struct {
	mu   sync.Mutex
	seq  int
	subs map[int]func(T)
}

func (c *callbackSet[T]) add(fn func(T)) CancelFunc {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subs == nil {
		c.subs = make(map[int]func(T))
	}
	c.seq++
	id := c.seq
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *callbackSet[T]) emit(v T) {
	c.mu.Lock()
	fns := make([]func(T), 0, len(c.subs))
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (c *callbackSet[T]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// FakeSource implements EventSource with synchronous in-process dispatch.
// Emit methods invoke registered callbacks on the caller's goroutine.
type FakeSource struct {
	pointerMove  callbackSet[PointerEvent]
	pointerEnter callbackSet[PointerEvent]
	pointerLeave callbackSet[PointerEvent]
	pointerOver  callbackSet[TargetEvent]
	pointerOut   callbackSet[TargetEvent]
	click        callbackSet[TargetEvent]
	focus        callbackSet[TargetEvent]
	blur         callbackSet[TargetEvent]
	scroll       callbackSet[ScrollEvent]
	errors       callbackSet[ErrorEvent]
	visibility   callbackSet[bool]
}

// NewFakeSource creates an empty source.
func NewFakeSource() *FakeSource { return &FakeSource{} }

func (s *FakeSource) OnPointerMove(fn func(PointerEvent)) CancelFunc  { return s.pointerMove.add(fn) }
func (s *FakeSource) OnPointerEnter(fn func(PointerEvent)) CancelFunc { return s.pointerEnter.add(fn) }
func (s *FakeSource) OnPointerLeave(fn func(PointerEvent)) CancelFunc { return s.pointerLeave.add(fn) }
func (s *FakeSource) OnPointerOver(fn func(TargetEvent)) CancelFunc   { return s.pointerOver.add(fn) }
func (s *FakeSource) OnPointerOut(fn func(TargetEvent)) CancelFunc    { return s.pointerOut.add(fn) }
func (s *FakeSource) OnClick(fn func(TargetEvent)) CancelFunc         { return s.click.add(fn) }
func (s *FakeSource) OnFocus(fn func(TargetEvent)) CancelFunc         { return s.focus.add(fn) }
func (s *FakeSource) OnBlur(fn func(TargetEvent)) CancelFunc          { return s.blur.add(fn) }
func (s *FakeSource) OnScroll(fn func(ScrollEvent)) CancelFunc        { return s.scroll.add(fn) }
func (s *FakeSource) OnError(fn func(ErrorEvent)) CancelFunc          { return s.errors.add(fn) }
func (s *FakeSource) OnVisibilityChange(fn func(visible bool)) CancelFunc {
	return s.visibility.add(fn)
}

// Emit helpers used by tests and the simulator.

func (s *FakeSource) EmitPointerMove(e PointerEvent)  { s.pointerMove.emit(e) }
func (s *FakeSource) EmitPointerEnter(e PointerEvent) { s.pointerEnter.emit(e) }
func (s *FakeSource) EmitPointerLeave(e PointerEvent) { s.pointerLeave.emit(e) }
func (s *FakeSource) EmitPointerOver(e TargetEvent)   { s.pointerOver.emit(e) }
func (s *FakeSource) EmitPointerOut(e TargetEvent)    { s.pointerOut.emit(e) }
func (s *FakeSource) EmitClick(e TargetEvent)         { s.click.emit(e) }
func (s *FakeSource) EmitFocus(e TargetEvent)         { s.focus.emit(e) }
func (s *FakeSource) EmitBlur(e TargetEvent)          { s.blur.emit(e) }
func (s *FakeSource) EmitScroll(e ScrollEvent)        { s.scroll.emit(e) }
func (s *FakeSource) EmitError(e ErrorEvent)          { s.errors.emit(e) }
func (s *FakeSource) EmitVisibility(visible bool)     { s.visibility.emit(visible) }

// ListenerCount returns the number of live registrations across all kinds.
// Stop contracts are verified against this going back to zero.
func (s *FakeSource) ListenerCount() int {
	return s.pointerMove.len() + s.pointerEnter.len() + s.pointerLeave.len() +
		s.pointerOver.len() + s.pointerOut.len() + s.click.len() +
		s.focus.len() + s.blur.len() + s.scroll.len() +
		s.errors.len() + s.visibility.len()
}

// FakeWatcher implements DocumentWatcher with manual insertion.
type FakeWatcher struct {
	added callbackSet[Element]
}

// NewFakeWatcher creates an empty watcher.
func NewFakeWatcher() *FakeWatcher { return &FakeWatcher{} }

// OnElementAdded registers an insertion callback.
func (w *FakeWatcher) OnElementAdded(fn func(Element)) CancelFunc {
	return w.added.add(fn)
}

// InsertElement simulates a document mutation adding el.
func (w *FakeWatcher) InsertElement(el Element) {
	w.added.emit(el)
}

// SubscriberCount returns live insertion subscriptions.
func (w *FakeWatcher) SubscriberCount() int { return w.added.len() }

// FakeEnvironment implements Environment with fixed values.
type FakeEnvironment struct {
	UA     string
	Touch  bool
	Width  int
	Height int
}

func (e FakeEnvironment) UserAgent() string   { return e.UA }
func (e FakeEnvironment) TouchCapable() bool  { return e.Touch }
func (e FakeEnvironment) ViewportWidth() int  { return e.Width }
func (e FakeEnvironment) ViewportHeight() int { return e.Height }
