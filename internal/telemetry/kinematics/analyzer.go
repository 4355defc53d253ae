package kinematics

import (
	"math"

	"github.com/shopmorph/morph/internal/domain/model"
)

// Metrics aggregates a window of motion samples into the features the
// behavior classifier reads.
type Metrics struct {
	AvgVelocity         float64
	MaxVelocity         float64
	AvgAcceleration     float64
	MaxAcceleration     float64
	AvgJerk             float64
	MaxJerk             float64
	DirectionChanges    int
	DirectionChangeRate float64
	SampleCount         int
}

// Analyzer reduces raw sample runs to windowed motion metrics.
type Analyzer struct{}

// NewAnalyzer creates an analyzer.
func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Analyze derives velocity, acceleration and jerk statistics from a sample
// window. Fewer than two samples yield zero metrics. Direction changes count
// velocity sign flips on either axis as an indecision signal.
func (a *Analyzer) Analyze(samples []model.MotorSample) Metrics {
	if len(samples) < 2 {
		return Metrics{SampleCount: len(samples)}
	}

	var (
		velocities    []float64
		accelerations []float64
		jerks         []float64
		prevVel       model.Vec2
		havePrevVel   bool
		changes       int
	)

	for i := 1; i < len(samples); i++ {
		prev := samples[i-1]
		curr := samples[i]

		dt := float64(curr.TS-prev.TS) / 1000.0
		if dt <= 0 {
			continue
		}

		vel := model.Vec2{
			X: (curr.X - prev.X) / dt,
			Y: (curr.Y - prev.Y) / dt,
		}
		velocities = append(velocities, math.Hypot(vel.X, vel.Y))

		if havePrevVel {
			acc := model.Vec2{
				X: (vel.X - prevVel.X) / dt,
				Y: (vel.Y - prevVel.Y) / dt,
			}
			accelerations = append(accelerations, math.Hypot(acc.X, acc.Y))

			if n := len(accelerations); n >= 2 {
				jerks = append(jerks, math.Abs(accelerations[n-1]-accelerations[n-2])/dt)
			}

			if prevVel.X*vel.X < 0 || prevVel.Y*vel.Y < 0 {
				changes++
			}
		}

		prevVel = vel
		havePrevVel = true
	}

	m := Metrics{
		DirectionChanges:    changes,
		DirectionChangeRate: float64(changes) / float64(len(samples)),
		SampleCount:         len(samples),
	}
	m.AvgVelocity, m.MaxVelocity = avgMax(velocities)
	m.AvgAcceleration, m.MaxAcceleration = avgMax(accelerations)
	m.AvgJerk, m.MaxJerk = avgMax(jerks)
	return m
}

func avgMax(xs []float64) (avg, maxVal float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
		if x > maxVal {
			maxVal = x
		}
	}
	return sum / float64(len(xs)), maxVal
}
