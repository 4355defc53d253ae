package kinematics

import (
	"math"

	"github.com/shopmorph/morph/internal/domain/model"
)

// Default classification thresholds.
const (
	defaultJitterThreshold    = 0.5
	defaultAnxietyThreshold   = 0.3
	defaultDeterminedVelocity = 500.0

	idleVelocityCeiling    = 10.0
	jitteryJerkFloor       = 1000.0
	jitteryVelocityCeiling = 200.0
	smoothChangeRate       = 0.1
	browsingConfidence     = 0.7
	idleConfidence         = 0.9
)

// ClassifierOption applies a configuration option to the Classifier.
type ClassifierOption func(*Classifier)

// WithJitterThreshold sets the direction-change rate above which motion
// reads as jittery.
func WithJitterThreshold(v float64) ClassifierOption {
	return func(c *Classifier) {
		if v > 0 {
			c.jitterThreshold = v
		}
	}
}

// WithAnxietyThreshold sets the direction-change rate above which motion
// reads as anxious.
func WithAnxietyThreshold(v float64) ClassifierOption {
	return func(c *Classifier) {
		if v > 0 {
			c.anxietyThreshold = v
		}
	}
}

// WithDeterminedVelocity sets the average velocity above which smooth
// motion reads as determined.
func WithDeterminedVelocity(v float64) ClassifierOption {
	return func(c *Classifier) {
		if v > 0 {
			c.determinedVelocity = v
		}
	}
}

// Classifier maps motion metrics to a motor behavior with a confidence.
// Threshold-based; no model calls.
type Classifier struct {
	jitterThreshold    float64
	anxietyThreshold   float64
	determinedVelocity float64
}

// NewClassifier creates a classifier with default thresholds.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		jitterThreshold:    defaultJitterThreshold,
		anxietyThreshold:   defaultAnxietyThreshold,
		determinedVelocity: defaultDeterminedVelocity,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify picks the behavior for a metrics window. Order matters: idle
// wins outright, jittery beats anxious, and browsing is the fallback.
func (c *Classifier) Classify(m Metrics) (model.MotorBehavior, float64) {
	if m.AvgVelocity < idleVelocityCeiling {
		return model.BehaviorIdle, idleConfidence
	}

	if m.DirectionChangeRate > c.jitterThreshold &&
		m.AvgJerk > jitteryJerkFloor &&
		m.AvgVelocity < jitteryVelocityCeiling {
		confidence := math.Min(1.0, m.DirectionChangeRate/c.jitterThreshold)
		return model.BehaviorJittery, confidence
	}

	if m.DirectionChangeRate > c.anxietyThreshold {
		confidence := math.Min(1.0, m.DirectionChangeRate/c.jitterThreshold)
		return model.BehaviorAnxious, confidence
	}

	if m.AvgVelocity > c.determinedVelocity && m.DirectionChangeRate < smoothChangeRate {
		confidence := math.Min(1.0, m.AvgVelocity/(c.determinedVelocity*2))
		return model.BehaviorDetermined, confidence
	}

	return model.BehaviorBrowsing, browsingConfidence
}
