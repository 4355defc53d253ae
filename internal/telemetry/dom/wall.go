package dom

import (
	"sync"
	"time"
)

// WallClock implements Clock with the system clock.
type WallClock struct{}

// Now returns the current system time.
func (WallClock) Now() time.Time { return time.Now() }

// WallScheduler implements Scheduler with real timers.
type WallScheduler struct{}

// After runs fn once after d.
func (WallScheduler) After(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Every runs fn at interval d until cancelled.
func (WallScheduler) Every(d time.Duration, fn func()) CancelFunc {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
