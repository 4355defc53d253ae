package simulate

import "time"

// Persona names a scripted behavior profile for one synthetic session.
type Persona string

// Personas.
const (
	PersonaBrowse Persona = "browse" // calm product browsing with hovers and dwell
	PersonaRage   Persona = "rage"   // rapid clicking on unresponsive targets
	PersonaScan   Persona = "scan"   // fast scrolling with abrupt direction changes
	PersonaMixed  Persona = "mixed"  // rotates through the personas above
)

// Config holds configuration for the session simulator
type Config struct {
	BaseURL    string        // Base URL of the diagnostic API, "" skips server checks
	IngestURL  string        // Ingest endpoint for batches, "" keeps batches in-process
	Sessions   int           // Number of synthetic sessions to run
	Persona    Persona       // Behavior profile driving each session
	Seed       int64         // RNG seed for reproducible traces
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for delivered batches
	LogFile    string        // Log file for simulator output
	Verbose    bool          // Enable verbose logging
}

// Stats holds simulation statistics
type Stats struct {
	SessionsRun      int
	BatchesDelivered int
	BatchesFailed    int
	EventsDelivered  int
	MotorSamples     int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

// serverStats mirrors the /stats response of the diagnostic API.
type serverStats struct {
	Started     bool   `json:"started"`
	ModuleID    int    `json:"module_id"`
	Genre       string `json:"genre"`
	Layout      string `json:"layout"`
	SessionID   string `json:"session_id"`
	DeviceType  string `json:"device_type"`
	Batches     int    `json:"batches"`
	CatalogSize int    `json:"catalog_size"`
}
