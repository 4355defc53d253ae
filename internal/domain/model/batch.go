package model

// DeviceType is the coarse device classification for a session.
type DeviceType string

// Device types.
const (
	DeviceDesktop DeviceType = "desktop"
	DeviceTablet  DeviceType = "tablet"
	DeviceMobile  DeviceType = "mobile"
)

// MotorPayload is the motion sub-payload of a batch. Samples are flattened
// to [x, y] pairs on the wire; T0 and DT reconstruct per-sample timing.
type MotorPayload struct {
	Device  PointerDevice `json:"device"`
	T0      int64         `json:"t0"`
	DT      int64         `json:"dt"`
	Samples [][2]float64  `json:"samples"`
}

// TelemetryBatch is the unit of transmission to the ingest boundary. The
// buffer constructs one at flush time and keeps no retained history.
type TelemetryBatch struct {
	SessionID  string           `json:"session_id"`
	DeviceType DeviceType       `json:"device_type"`
	Timestamp  int64            `json:"timestamp"` // second-resolution Unix time
	Events     []TelemetryEvent `json:"events"`
	Motor      *MotorPayload    `json:"motor,omitempty"`
}
