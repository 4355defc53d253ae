package simulate

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/shopmorph/morph/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "simulate_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the session simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Morph Session Simulator
=======================

Replays scripted shopper sessions through the telemetry pipeline and
delivers the resulting batches to an ingest endpoint.

Usage:
  go run cmd/simulate/main.go [options]

Options:
  -url string
        Base URL of the diagnostic API ("" skips server checks)
  -ingest string
        Ingest endpoint for telemetry batches ("" keeps batches in-process)
  -sessions int
        Number of synthetic sessions to run (default 10)
  -persona string
        Behavior profile: browse, rage, scan or mixed (default "mixed")
  -seed int
        RNG seed for reproducible traces (default 1)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for delivered batches (default: none)
  -log string
        Log file for simulator output (default: simulate_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Dry run: 10 mixed sessions, batches kept in-process
  go run cmd/simulate/main.go

  # Drive a local server and its ingest endpoint
  go run cmd/simulate/main.go -url http://localhost:9080 -ingest http://localhost:8000/api/events

  # Reproducible rage traffic, saved for inspection
  go run cmd/simulate/main.go -persona rage -seed 42 -output rage_batches.json
`)
}
