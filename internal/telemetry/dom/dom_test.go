package dom_test

import (
	"testing"
	"time"

	"github.com/shopmorph/morph/internal/telemetry/dom"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRect(t *testing.T) {
	Convey("Given document rectangles", t, func() {
		viewport := dom.Rect{Top: 0, Left: 0, Width: 1280, Height: 800}

		Convey("Then an element inside the viewport intersects", func() {
			So(viewport.Intersects(dom.Rect{Top: 100, Left: 100, Width: 200, Height: 50}), ShouldBeTrue)
		})

		Convey("Then an element below the fold does not", func() {
			So(viewport.Intersects(dom.Rect{Top: 900, Left: 0, Width: 200, Height: 50}), ShouldBeFalse)
		})

		Convey("Then a partially visible element intersects", func() {
			So(viewport.Intersects(dom.Rect{Top: 780, Left: 0, Width: 200, Height: 100}), ShouldBeTrue)
		})

		Convey("Then zero-area rectangles never intersect", func() {
			So(viewport.Intersects(dom.Rect{Top: 10, Left: 10}), ShouldBeFalse)
		})
	})
}

func TestFakeScheduler(t *testing.T) {
	Convey("Given a fake scheduler on a frozen clock", t, func() {
		clock := dom.NewFakeClock(time.Unix(1_700_000_000, 0))
		sched := dom.NewFakeScheduler(clock)

		Convey("When one-shot timers are armed out of order", func() {
			var order []string
			sched.After(300*time.Millisecond, func() { order = append(order, "late") })
			sched.After(100*time.Millisecond, func() { order = append(order, "early") })

			Convey("Then Advance fires them chronologically", func() {
				sched.Advance(time.Second)
				So(order, ShouldResemble, []string{"early", "late"})
				So(sched.PendingTimers(), ShouldEqual, 0)
			})

			Convey("Then a short Advance fires only what is due", func() {
				sched.Advance(150 * time.Millisecond)
				So(order, ShouldResemble, []string{"early"})
				So(sched.PendingTimers(), ShouldEqual, 1)
			})
		})

		Convey("When a repeating timer is armed", func() {
			var fired int
			cancel := sched.Every(100*time.Millisecond, func() { fired++ })

			Convey("Then it fires once per interval", func() {
				sched.Advance(350 * time.Millisecond)
				So(fired, ShouldEqual, 3)
			})

			Convey("Then cancel disarms it", func() {
				cancel()
				sched.Advance(time.Second)
				So(fired, ShouldEqual, 0)
			})
		})

		Convey("Then the clock lands on the callback's deadline when it runs", func() {
			start := clock.Now()
			var at time.Time
			sched.After(250*time.Millisecond, func() { at = clock.Now() })
			sched.Advance(time.Second)
			So(at, ShouldEqual, start.Add(250*time.Millisecond))
			So(clock.Now(), ShouldEqual, start.Add(time.Second))
		})

		Convey("Then cancelling a pending timer prevents its fire", func() {
			var fired bool
			cancel := sched.After(100*time.Millisecond, func() { fired = true })
			cancel()
			sched.Advance(time.Second)
			So(fired, ShouldBeFalse)
		})
	})
}
