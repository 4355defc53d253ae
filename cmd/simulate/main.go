package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/shopmorph/morph/internal/simulate"
)

// Default configuration constants.
const (
	defaultSessions   = 10
	defaultSeed       = 1
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "", "Base URL of the diagnostic API (empty skips server checks)")
		ingestURL  = flag.String("ingest", "", "Ingest endpoint for telemetry batches (empty keeps batches in-process)")
		sessions   = flag.Int("sessions", defaultSessions, "Number of synthetic sessions to run")
		persona    = flag.String("persona", string(simulate.PersonaMixed), "Behavior profile: browse, rage, scan or mixed")
		seed       = flag.Int64("seed", defaultSeed, "RNG seed for reproducible traces")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for delivered batches")
		logFile    = flag.String("log", "", "Log file for simulator output (default: simulate_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	// Setup logging
	if err := simulate.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create simulation configuration
	config := &simulate.Config{
		BaseURL:    *baseURL,
		IngestURL:  *ingestURL,
		Sessions:   *sessions,
		Persona:    simulate.Persona(*persona),
		Seed:       *seed,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the simulation
	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}
