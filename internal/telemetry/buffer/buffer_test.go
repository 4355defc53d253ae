package buffer_test

import (
	"testing"
	"time"

	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/buffer"
	"github.com/shopmorph/morph/internal/telemetry/dom"
	. "github.com/smartystreets/goconvey/convey"
)

func event(kind model.EventKind, ts int64) model.TelemetryEvent {
	return model.TelemetryEvent{TS: ts, Kind: kind, TargetID: "target"}
}

func TestBuffer(t *testing.T) {
	Convey("Given a started buffer", t, func() {
		clock := dom.NewFakeClock(time.Unix(1_700_000_000, 0))
		sched := dom.NewFakeScheduler(clock)
		var sent []model.TelemetryBatch
		b := buffer.New("session-1", model.DeviceDesktop, clock, sched,
			func(batch model.TelemetryBatch) { sent = append(sent, batch) },
			buffer.WithFlushInterval(5*time.Second),
			buffer.WithMaxEvents(3),
		)
		b.Start()
		defer b.Stop()

		Convey("When events are queued and the timer fires", func() {
			b.AddEvent(event(model.KindClick, 1000))
			b.AddEvent(event(model.KindHover, 2000))
			sched.Advance(5 * time.Second)

			Convey("Then one batch carries both with session identity", func() {
				So(sent, ShouldHaveLength, 1)
				So(sent[0].SessionID, ShouldEqual, "session-1")
				So(sent[0].DeviceType, ShouldEqual, model.DeviceDesktop)
				So(sent[0].Timestamp, ShouldEqual, int64(1_700_000_005))
				So(sent[0].Events, ShouldHaveLength, 2)
				So(sent[0].Motor, ShouldBeNil)
				So(b.BatchCount(), ShouldEqual, 1)
			})

			Convey("And the queue is empty afterwards", func() {
				So(b.Pending(), ShouldEqual, 0)
			})
		})

		Convey("When nothing is queued", func() {
			sched.Advance(15 * time.Second)
			b.Flush()

			Convey("Then no empty batch is ever sent", func() {
				So(sent, ShouldBeEmpty)
				So(b.BatchCount(), ShouldEqual, 0)
			})
		})

		Convey("When the event cap is reached", func() {
			b.AddEvent(event(model.KindClick, 1000))
			b.AddEvent(event(model.KindClick, 1100))
			b.AddEvent(event(model.KindClick, 1200))

			Convey("Then the flush is forced before the timer", func() {
				So(sent, ShouldHaveLength, 1)
				So(sent[0].Events, ShouldHaveLength, 3)
			})
		})

		Convey("When motion runs are queued", func() {
			b.AddMotorRun(model.MotorRun{
				Device: model.DeviceMouse,
				T0:     1000,
				DT:     16,
				Samples: []model.MotorSample{
					{X: 100, Y: 200, TS: 1000},
					{X: 105, Y: 202, TS: 1016},
				},
			})
			b.AddMotorRun(model.MotorRun{
				Device:  model.DeviceMouse,
				T0:      2000,
				DT:      16,
				Samples: []model.MotorSample{{X: 110, Y: 205, TS: 2000}},
			})
			b.Flush()

			Convey("Then the batch merges them into one motor payload", func() {
				So(sent, ShouldHaveLength, 1)
				motor := sent[0].Motor
				So(motor, ShouldNotBeNil)
				So(motor.Device, ShouldEqual, model.DeviceMouse)
				So(motor.T0, ShouldEqual, int64(1000))
				So(motor.DT, ShouldEqual, int64(16))
				So(motor.Samples, ShouldResemble, [][2]float64{
					{100, 200}, {105, 202}, {110, 205},
				})
			})
		})

		Convey("When flushed twice in a row", func() {
			b.AddEvent(event(model.KindClick, 1000))
			b.Flush()
			b.Flush()

			Convey("Then the second flush is a no-op", func() {
				So(sent, ShouldHaveLength, 1)
				So(b.BatchCount(), ShouldEqual, 1)
			})
		})

		Convey("When the buffer stops with events pending", func() {
			b.AddEvent(event(model.KindClick, 1000))
			b.Stop()

			Convey("Then a final flush is attempted and the timer dies", func() {
				So(sent, ShouldHaveLength, 1)
				So(sched.PendingTimers(), ShouldEqual, 0)
			})

			Convey("Then later timer ticks cannot fire", func() {
				sched.Advance(time.Minute)
				So(sent, ShouldHaveLength, 1)
			})

			Convey("Then stopping again is a no-op", func() {
				So(b.Stop, ShouldNotPanic)
				So(sent, ShouldHaveLength, 1)
			})
		})

		Convey("Then stop before start does not panic", func() {
			fresh := buffer.New("session-2", model.DeviceMobile, clock, sched, nil)
			So(fresh.Stop, ShouldNotPanic)
		})
	})
}
