package simulate

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopmorph/morph/internal/adapters/sink"
	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/telemetry/dom"
	"github.com/shopmorph/morph/internal/telemetry/session"
	"github.com/shopmorph/morph/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the configured number of synthetic sessions.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting session simulation",
		logger.String("baseURL", config.BaseURL),
		logger.String("ingestURL", config.IngestURL),
		logger.Int("sessions", config.Sessions),
		logger.String("persona", string(config.Persona)),
		logger.Int64("seed", config.Seed),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check the diagnostic API when a server is configured
	if config.BaseURL != "" {
		if err := checkServerHealth(ctx, config); err != nil {
			return fmt.Errorf("server health check failed: %w", err)
		}
	}

	// Step 2: Run sessions
	recorder := newRecordingSender(config, stats)
	for i := 0; i < config.Sessions; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled during simulation: %w", ctx.Err())
		default:
		}

		if err := runSession(ctx, config, recorder, i); err != nil {
			return fmt.Errorf("session %d failed: %w", i, err)
		}
		stats.SessionsRun++
	}

	// Step 3: Compare against the server's view
	if config.BaseURL != "" {
		if err := verifyServerStats(ctx, config, stats); err != nil {
			logger.Get().Warn(ctx, "server stats verification failed", logger.Error(err))
		}
	}

	// Step 4: Save delivered batches to file
	if config.OutputFile != "" {
		if err := saveBatchesToFile(ctx, config, recorder.all()); err != nil {
			logger.Get().Warn(ctx, "failed to save batches to file", logger.Error(err))
		}
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// runSession builds one headless session over the dom fakes, replays the
// persona script against it, and shuts it down so the final flush lands.
func runSession(ctx context.Context, config *Config, recorder *recordingSender, index int) error {
	clock := dom.NewFakeClock(time.Now())
	sched := dom.NewFakeScheduler(clock)
	source := dom.NewFakeSource()
	watcher := dom.NewFakeWatcher()
	env := dom.FakeEnvironment{
		UA:     "Mozilla/5.0 (X11; Linux x86_64) morph-simulator",
		Width:  int(viewportWidth),
		Height: int(viewportHeight),
	}

	coordinator := session.New(source, watcher, clock, sched, env, recorder)
	if err := coordinator.Start(ctx); err != nil {
		return err
	}

	pg := newPage()
	coordinator.ObserveModule(pg.hero)
	coordinator.ObserveModule(pg.gallery)
	coordinator.ObserveModule(pg.cta)

	t := &trace{
		source: source,
		clock:  clock,
		sched:  sched,
		rng:    rand.New(rand.NewSource(config.Seed + int64(index))),
		page:   pg,
	}
	script(config.Persona, index)(t)

	coordinator.Stop()

	if config.Verbose {
		logger.Get().Info(ctx, "session finished",
			logger.String("sessionID", coordinator.SessionID()),
			logger.Int("batches", coordinator.BatchCount()))
	}
	return nil
}

// recordingSender counts delivered batches and optionally forwards them to
// the real ingest endpoint.
type recordingSender struct {
	mu      sync.Mutex
	next    sink.Sender
	stats   *Stats
	batches []model.TelemetryBatch
}

func newRecordingSender(config *Config, stats *Stats) *recordingSender {
	r := &recordingSender{stats: stats}
	if config.IngestURL != "" {
		if s, err := sink.New(config.IngestURL, sink.WithTimeout(config.Timeout)); err == nil {
			r.next = s
		}
	}
	return r
}

// Send implements sink.Sender.
func (r *recordingSender) Send(ctx context.Context, batch model.TelemetryBatch) error {
	var err error
	if r.next != nil {
		err = r.next.Send(ctx, batch)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.stats.BatchesFailed++
		return err
	}
	r.stats.BatchesDelivered++
	r.stats.EventsDelivered += len(batch.Events)
	if batch.Motor != nil {
		r.stats.MotorSamples += len(batch.Motor.Samples)
	}
	r.batches = append(r.batches, batch)
	return nil
}

func (r *recordingSender) all() []model.TelemetryBatch {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.TelemetryBatch, len(r.batches))
	copy(out, r.batches)
	return out
}

// saveBatchesToFile saves the delivered batches to a JSON file.
func saveBatchesToFile(ctx context.Context, config *Config, batches []model.TelemetryBatch) error {
	if len(batches) == 0 {
		return fmt.Errorf("no batches to save")
	}

	filename := config.OutputFile
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(batches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batches: %w", err)
	}
	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "batches saved to file",
		logger.String("filename", filename),
		logger.Int("count", len(batches)))
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var batchesPerSecond float64
	if stats.Duration > 0 {
		batchesPerSecond = float64(stats.BatchesDelivered) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("sessionsRun", stats.SessionsRun),
		logger.Int("batchesDelivered", stats.BatchesDelivered),
		logger.Int("batchesFailed", stats.BatchesFailed),
		logger.Int("eventsDelivered", stats.EventsDelivered),
		logger.Int("motorSamples", stats.MotorSamples),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("batchesPerSecond", batchesPerSecond))
}
