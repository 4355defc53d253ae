package kinematics_test

import (
	"testing"

	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/kinematics"
	. "github.com/smartystreets/goconvey/convey"
)

// steps builds a sample window from per-step x deltas, 100ms apart.
func steps(deltas ...float64) []model.MotorSample {
	samples := []model.MotorSample{{X: 0, Y: 0, TS: 0}}
	x := 0.0
	for i, d := range deltas {
		x += d
		samples = append(samples, model.MotorSample{X: x, TS: int64((i + 1) * 100)})
	}
	return samples
}

func TestAnalyzer(t *testing.T) {
	Convey("Given an analyzer", t, func() {
		a := kinematics.NewAnalyzer()

		Convey("When the window is too short", func() {
			So(a.Analyze(nil).AvgVelocity, ShouldEqual, 0)

			m := a.Analyze([]model.MotorSample{{X: 5, Y: 5, TS: 100}})
			So(m.SampleCount, ShouldEqual, 1)
			So(m.AvgVelocity, ShouldEqual, 0)
		})

		Convey("When motion accelerates steadily", func() {
			m := a.Analyze(steps(10, 20, 30))

			Convey("Then velocity and acceleration statistics follow the deltas", func() {
				// Step velocities 100, 200, 300 px/s.
				So(m.AvgVelocity, ShouldAlmostEqual, 200.0, 1e-6)
				So(m.MaxVelocity, ShouldAlmostEqual, 300.0, 1e-6)
				// Each 100 px/s rise over 0.1s.
				So(m.AvgAcceleration, ShouldAlmostEqual, 1000.0, 1e-6)
				So(m.MaxAcceleration, ShouldAlmostEqual, 1000.0, 1e-6)
				// Constant acceleration, zero jerk.
				So(m.AvgJerk, ShouldEqual, 0)
				So(m.DirectionChanges, ShouldEqual, 0)
				So(m.SampleCount, ShouldEqual, 4)
			})
		})

		Convey("When the pointer oscillates", func() {
			m := a.Analyze(steps(10, -10, 10, -10))

			Convey("Then every reversal counts as a direction change", func() {
				So(m.DirectionChanges, ShouldEqual, 3)
				So(m.DirectionChangeRate, ShouldAlmostEqual, 3.0/5.0, 1e-6)
				So(m.AvgVelocity, ShouldAlmostEqual, 100.0, 1e-6)
			})
		})

		Convey("When samples share a timestamp", func() {
			m := a.Analyze([]model.MotorSample{
				{X: 0, TS: 0},
				{X: 10, TS: 0},
				{X: 20, TS: 100},
			})

			Convey("Then the zero-interval step is skipped", func() {
				So(m.AvgVelocity, ShouldAlmostEqual, 100.0, 1e-6)
				So(m.MaxVelocity, ShouldAlmostEqual, 100.0, 1e-6)
			})
		})
	})
}

func TestClassifier(t *testing.T) {
	Convey("Given a classifier with default thresholds", t, func() {
		c := kinematics.NewClassifier()

		cases := []struct {
			name     string
			metrics  kinematics.Metrics
			behavior model.MotorBehavior
		}{
			{
				"near-still motion is idle",
				kinematics.Metrics{AvgVelocity: 4},
				model.BehaviorIdle,
			},
			{
				"slow erratic motion with high jerk is jittery",
				kinematics.Metrics{AvgVelocity: 150, AvgJerk: 1500, DirectionChangeRate: 0.6},
				model.BehaviorJittery,
			},
			{
				"frequent reversals without jerk are anxious",
				kinematics.Metrics{AvgVelocity: 150, AvgJerk: 200, DirectionChangeRate: 0.4},
				model.BehaviorAnxious,
			},
			{
				"fast smooth motion is determined",
				kinematics.Metrics{AvgVelocity: 800, DirectionChangeRate: 0.05},
				model.BehaviorDetermined,
			},
			{
				"moderate motion falls back to browsing",
				kinematics.Metrics{AvgVelocity: 200, DirectionChangeRate: 0.15},
				model.BehaviorBrowsing,
			},
			{
				"fast but wandering motion is browsing, not determined",
				kinematics.Metrics{AvgVelocity: 800, DirectionChangeRate: 0.2},
				model.BehaviorBrowsing,
			},
		}

		for _, tc := range cases {
			tc := tc
			Convey("Then "+tc.name, func() {
				behavior, confidence := c.Classify(tc.metrics)
				So(behavior, ShouldEqual, tc.behavior)
				So(confidence, ShouldBeGreaterThan, 0)
				So(confidence, ShouldBeLessThanOrEqualTo, 1)
			})
		}

		Convey("Then idle takes precedence over everything", func() {
			behavior, confidence := c.Classify(kinematics.Metrics{
				AvgVelocity:         5,
				AvgJerk:             5000,
				DirectionChangeRate: 0.9,
			})
			So(behavior, ShouldEqual, model.BehaviorIdle)
			So(confidence, ShouldAlmostEqual, 0.9, 1e-9)
		})
	})

	Convey("Given tuned thresholds", t, func() {
		c := kinematics.NewClassifier(
			kinematics.WithAnxietyThreshold(0.6),
			kinematics.WithDeterminedVelocity(100),
		)

		Convey("Then the boundaries move with the options", func() {
			behavior, _ := c.Classify(kinematics.Metrics{AvgVelocity: 150, DirectionChangeRate: 0.05})
			So(behavior, ShouldEqual, model.BehaviorDetermined)
		})
	})
}
