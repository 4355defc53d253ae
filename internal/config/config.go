// Package config defines process configuration and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address for metrics and diagnostics.
	Addr string `koanf:"addr"`

	// IngestURL is the telemetry batch endpoint.
	IngestURL string `koanf:"ingest_url"`

	// SuggestURL is the websocket suggestion stream, empty to disable.
	SuggestURL string `koanf:"suggest_url"`

	// FlushIntervalMS sets the periodic batch flush interval.
	FlushIntervalMS int `koanf:"flush_interval_ms"`

	// MaxBatchEvents forces a flush when the queue reaches this size.
	MaxBatchEvents int `koanf:"max_batch_events"`

	// SampleMinIntervalMS throttles pointer sampling.
	SampleMinIntervalMS int `koanf:"sample_min_interval_ms"`

	// MotorBufferCap forces a motion flush at this raw-sample count.
	MotorBufferCap int `koanf:"motor_buffer_cap"`

	// HoverMinMS is the minimum dwell for a hover event.
	HoverMinMS int `koanf:"hover_min_ms"`

	// ScrollDebounceMS marks a scroll as quiet after this inactivity.
	ScrollDebounceMS int `koanf:"scroll_debounce_ms"`

	// ScrollDwellMS is the lingering interval that produces scroll_stop.
	ScrollDwellMS int `koanf:"scroll_dwell_ms"`

	// ExcessiveScrollVelocity is the frantic-search threshold in px/s.
	ExcessiveScrollVelocity float64 `koanf:"excessive_scroll_velocity"`

	// RageWindowMS and RageThreshold control rage-click detection.
	RageWindowMS  int `koanf:"rage_window_ms"`
	RageThreshold int `koanf:"rage_threshold"`

	// ClickErrorWindowMS is the click-to-error attribution window.
	ClickErrorWindowMS int `koanf:"click_error_window_ms"`

	// TabletMinWidth separates tablets from phones among touch devices.
	TabletMinWidth int `koanf:"tablet_min_width"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		IngestURL:               "http://localhost:8000/api/events",
		SuggestURL:              "",
		FlushIntervalMS:         5000,
		MaxBatchEvents:          100,
		SampleMinIntervalMS:     16,
		MotorBufferCap:          60,
		HoverMinMS:              200,
		ScrollDebounceMS:        150,
		ScrollDwellMS:           500,
		ExcessiveScrollVelocity: 2500,
		RageWindowMS:            1000,
		RageThreshold:           3,
		ClickErrorWindowMS:      100,
		TabletMinWidth:          768,
	}
}
