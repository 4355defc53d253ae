// Package service glues the telemetry session, the suggestion stream and
// the style-matching engine into one process-level component behind the
// diagnostic HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopmorph/morph/internal/adapters/sink"
	"github.com/shopmorph/morph/internal/adapters/suggest"
	"github.com/shopmorph/morph/internal/config"
	"github.com/shopmorph/morph/internal/domain/address"
	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/domain/vector"
	"github.com/shopmorph/morph/internal/telemetry/dom"
	"github.com/shopmorph/morph/internal/telemetry/session"
	"github.com/shopmorph/morph/pkg/logger"
	"github.com/shopmorph/morph/pkg/metrics"
)

// Service runs the capture pipeline and folds inbound style suggestions
// into the current module choice.
type Service struct {
	mu sync.RWMutex

	// Host capabilities
	source  dom.EventSource
	watcher dom.DocumentWatcher
	clock   dom.Clock
	sched   dom.Scheduler
	env     dom.Environment

	// Configuration
	cfg    *config.Config
	sender sink.Sender

	// Components
	coordinator *session.Coordinator
	receiver    *suggest.Receiver
	catalog     *vector.Store

	// Rendering state. The 2-factor module id is the system of record;
	// template suggestions update its genre and keep the layout.
	current  address.Tag
	template address.TemplateTag

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the process configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithSender sets the batch sender, overriding the HTTP sink built from
// the ingest URL.
func WithSender(sender sink.Sender) Option {
	return func(s *Service) {
		if sender != nil {
			s.sender = sender
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a Service over the given host capabilities.
func New(source dom.EventSource, watcher dom.DocumentWatcher, clock dom.Clock, sched dom.Scheduler, env dom.Environment, opts ...Option) *Service {
	s := &Service{
		source:  source,
		watcher: watcher,
		clock:   clock,
		sched:   sched,
		env:     env,
		cfg:     config.New(),
		catalog: vector.NewCatalog(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds and starts the capture session and, when configured, the
// suggestion receiver. Calling Start twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	if s.sender == nil {
		httpSink, err := sink.New(s.cfg.IngestURL)
		if err != nil {
			return err
		}
		s.sender = httpSink
	}

	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	s.coordinator = session.New(s.source, s.watcher, s.clock, s.sched, s.env, s.sender,
		session.WithFlushInterval(ms(s.cfg.FlushIntervalMS)),
		session.WithMaxBatchEvents(s.cfg.MaxBatchEvents),
		session.WithSampleMinInterval(ms(s.cfg.SampleMinIntervalMS)),
		session.WithMotorBufferCap(s.cfg.MotorBufferCap),
		session.WithHoverMin(ms(s.cfg.HoverMinMS)),
		session.WithScrollDebounce(ms(s.cfg.ScrollDebounceMS)),
		session.WithScrollDwell(ms(s.cfg.ScrollDwellMS)),
		session.WithExcessiveVelocity(s.cfg.ExcessiveScrollVelocity),
		session.WithRageWindow(ms(s.cfg.RageWindowMS)),
		session.WithRageThreshold(s.cfg.RageThreshold),
		session.WithClickErrorWindow(ms(s.cfg.ClickErrorWindowMS)),
		session.WithTabletMinWidth(s.cfg.TabletMinWidth),
	)
	if err := session.Activate(ctx, s.coordinator); err != nil {
		return err
	}

	if s.cfg.SuggestURL != "" {
		receiver, err := suggest.NewReceiver(s.cfg.SuggestURL, s.onSuggestion)
		if err != nil {
			return err
		}
		if err := receiver.Start(ctx); err != nil {
			return err
		}
		s.receiver = receiver
	}

	s.started = true
	s.logger.Info(ctx, "storefront service started",
		logger.String("session_id", s.coordinator.SessionID()),
		logger.String("device_type", string(s.coordinator.DeviceType())),
		logger.Bool("suggestions", s.receiver != nil),
	)

	return nil
}

// Stop shuts the suggestion stream and the capture session down, in that
// order, so the final flush reflects everything captured. Idempotent; safe
// without Start.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	receiver := s.receiver
	s.receiver = nil
	s.mu.Unlock()

	if receiver != nil {
		receiver.Stop()
	}
	session.Deactivate()

	s.logger.Info(context.Background(), "storefront service stopped")
}

// Restart stops the running session and starts a fresh one. The old
// session's final batch is delivered before the new session id is minted.
func (s *Service) Restart(ctx context.Context) error {
	s.Stop()
	return s.Start(ctx)
}

// onSuggestion folds one pushed suggestion into the rendering state.
func (s *Service) onSuggestion(sg suggest.Suggestion) {
	s.ApplySuggestion(sg.TemplateID)
}

// ApplySuggestion decodes a template id and updates the current module's
// genre, keeping its layout. Returns the decoded template tag.
func (s *Service) ApplySuggestion(templateID int) address.TemplateTag {
	tag := address.DecodeTemplate(templateID)

	s.mu.Lock()
	s.template = tag
	s.current = address.Decode(address.Encode(tag.Genre, s.current.Layout))
	current := s.current
	s.mu.Unlock()

	metrics.RecordSuggestionApplied()
	s.logger.Debug(context.Background(), "suggestion applied",
		logger.Int("template_id", templateID),
		logger.String("genre", tag.Genre.String()),
		logger.String("layout", current.Layout.String()),
	)
	return tag
}

// SetModule replaces the current 2-factor module id outright.
func (s *Service) SetModule(moduleID int) address.Tag {
	tag := address.Decode(moduleID)

	s.mu.Lock()
	s.current = tag
	s.mu.Unlock()

	return tag
}

// CurrentModule returns the module the storefront should render.
func (s *Service) CurrentModule() address.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CurrentModuleID returns the encoded form of the current module.
func (s *Service) CurrentModuleID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return address.Encode(s.current.Genre, s.current.Layout)
}

// CurrentTemplate returns the last applied template suggestion.
func (s *Service) CurrentTemplate() address.TemplateTag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template
}

// MotorState returns the live kinematic state of the active session.
func (s *Service) MotorState() model.MotorState {
	s.mu.RLock()
	coordinator := s.coordinator
	s.mu.RUnlock()

	if coordinator == nil {
		return model.MotorState{}
	}
	return coordinator.MotorState()
}

// ObserveModule registers a page module for viewport tracking.
func (s *Service) ObserveModule(el dom.Element) {
	s.mu.RLock()
	coordinator := s.coordinator
	s.mu.RUnlock()

	if coordinator != nil {
		coordinator.ObserveModule(el)
	}
}

// RecommendModules ranks catalog modules against a user profile, most
// similar first.
func (s *Service) RecommendModules(profile model.UserProfile, k int) ([]vector.SearchResult, error) {
	return s.catalog.Search(vector.FromProfile(profile), k, nil)
}

// RecommendGenre picks the genre whose module vectors best match the
// profile.
func (s *Service) RecommendGenre(profile model.UserProfile, k int) (address.Genre, error) {
	results, err := s.RecommendModules(profile, k)
	if err != nil {
		return address.GenreBase, err
	}
	if len(results) == 0 {
		return address.GenreBase, nil
	}

	votes := make(map[address.Genre]int)
	for _, r := range results {
		votes[address.Decode(r.ID).Genre]++
	}
	best := address.Decode(results[0].ID).Genre
	for g, n := range votes {
		if n > votes[best] || (n == votes[best] && g < best) {
			best = g
		}
	}
	return best, nil
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":      s.started,
		"module_id":    address.Encode(s.current.Genre, s.current.Layout),
		"genre":        s.current.Genre.String(),
		"layout":       s.current.Layout.String(),
		"catalog_size": s.catalog.Len(),
	}

	if s.coordinator != nil {
		stats["session_id"] = s.coordinator.SessionID()
		stats["device_type"] = string(s.coordinator.DeviceType())
		stats["batches"] = s.coordinator.BatchCount()
	}

	return stats
}
