// Package suggest receives style suggestions pushed over a websocket.
//
// The stylist backend emits template identifiers as it reacts to telemetry;
// the receiver decodes each into its genre, module type and variation and
// hands it to the registered handler.
package suggest

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shopmorph/morph/internal/domain/address"
	"github.com/shopmorph/morph/pkg/logger"
	"github.com/shopmorph/morph/pkg/metrics"
)

const (
	defaultReconnectWait = 2 * time.Second
	defaultDialTimeout   = 10 * time.Second
)

// Suggestion is one decoded style suggestion.
type Suggestion struct {
	TemplateID int
	Tag        address.TemplateTag
}

// Handler receives decoded suggestions.
type Handler func(s Suggestion)

// wireSuggestion is the message format on the socket.
type wireSuggestion struct {
	TemplateID int `json:"template_id"`
}

// Receiver maintains a websocket subscription to the suggestion stream,
// reconnecting with a fixed wait when the connection drops.
type Receiver struct {
	url     string
	handler Handler
	log     logger.Logger

	reconnectWait time.Duration
	dialer        *websocket.Dialer

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewReceiver creates a receiver for the suggestion stream at url.
func NewReceiver(url string, handler Handler, opts ...Option) (*Receiver, error) {
	if url == "" {
		return nil, ErrEndpointRequired
	}

	r := &Receiver{
		url:           url,
		handler:       handler,
		log:           logger.Get().Named("suggest"),
		reconnectWait: defaultReconnectWait,
		dialer: &websocket.Dialer{
			HandshakeTimeout: defaultDialTimeout,
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Start opens the subscription and reads until Stop or ctx cancellation.
func (r *Receiver) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}
	r.started = true

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go func() {
		defer close(done)
		r.run(runCtx)
	}()
	return nil
}

// Stop closes the subscription and waits for the read loop to exit.
// Idempotent; safe without Start.
func (r *Receiver) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.started = false
	cancel := r.cancel
	done := r.done
	r.cancel = nil
	r.done = nil
	r.mu.Unlock()

	cancel()
	<-done
}

func (r *Receiver) run(ctx context.Context) {
	for {
		if err := r.readConn(ctx); err != nil && ctx.Err() == nil {
			r.log.Warn(ctx, "suggestion stream dropped", logger.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(r.reconnectWait):
		}
	}
}

// readConn dials once and consumes messages until the connection or the
// context dies.
func (r *Receiver) readConn(ctx context.Context) error {
	conn, _, err := r.dialer.DialContext(ctx, r.url, nil)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	// Unblock ReadMessage when the context is cancelled.
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	r.log.Debug(ctx, "suggestion stream connected", logger.String("url", r.url))

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		r.handleMessage(ctx, payload)
	}
}

func (r *Receiver) handleMessage(ctx context.Context, payload []byte) {
	var msg wireSuggestion
	if err := json.Unmarshal(payload, &msg); err != nil {
		r.log.Warn(ctx, "discarding malformed suggestion", logger.Error(err))
		return
	}

	metrics.RecordSuggestionReceived()
	suggestion := Suggestion{
		TemplateID: msg.TemplateID,
		Tag:        address.DecodeTemplate(msg.TemplateID),
	}
	r.log.Debug(ctx, "suggestion received",
		logger.Int("template_id", suggestion.TemplateID),
		logger.String("genre", suggestion.Tag.Genre.String()),
	)

	if r.handler != nil {
		r.handler(suggestion)
	}
}
