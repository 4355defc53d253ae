package model

// PointerDevice identifies the input device behind a motion run.
type PointerDevice string

// Pointer devices.
const (
	DeviceMouse PointerDevice = "mouse"
	DeviceTouch PointerDevice = "touch"
)

// MotorSample is a single accepted pointer position. Ephemeral; produced at
// sampling cadence and consumed into a run, never individually persisted.
type MotorSample struct {
	X  float64
	Y  float64
	TS int64 // milliseconds
}

// Vec2 is a two-dimensional kinematic vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MotorState is the derived kinematic state, recomputed on every qualifying
// sample and overwritten in place. Callers receive read-only snapshots.
//
// Jerk is the Euclidean norm of the acceleration vector, not the true third
// derivative of position. Downstream classification thresholds were tuned
// against this definition.
type MotorState struct {
	Velocity     Vec2    `json:"velocity"`
	Acceleration Vec2    `json:"acceleration"`
	Speed        float64 `json:"speed"`
	Jerk         float64 `json:"jerk"`
}

// MotorRun is a flushed window of raw samples handed to the consumer.
type MotorRun struct {
	Device  PointerDevice
	T0      int64 // timestamp of the first sample, milliseconds
	DT      int64 // nominal inter-sample interval, milliseconds
	Samples []MotorSample
}

// MotorBehavior is the classified cognitive state behind a motion window.
type MotorBehavior string

// Motor behaviors, from calm to frantic.
const (
	BehaviorIdle       MotorBehavior = "idle"
	BehaviorDetermined MotorBehavior = "determined"
	BehaviorBrowsing   MotorBehavior = "browsing"
	BehaviorAnxious    MotorBehavior = "anxious"
	BehaviorJittery    MotorBehavior = "jittery"
)
