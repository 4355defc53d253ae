// Package api declares the diagnostic HTTP surface and route registration
// helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopmorph/morph/internal/domain/address"
	"github.com/shopmorph/morph/internal/domain/model"
	"github.com/shopmorph/morph/internal/domain/vector"
)

// Dependencies required by the HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// MotorState exposes the live kinematic state for debugging overlays.
	MotorState() model.MotorState

	// CurrentModule and CurrentModuleID expose the rendering choice.
	CurrentModule() address.Tag
	CurrentModuleID() int

	// ApplySuggestion folds a template id into the rendering state.
	ApplySuggestion(templateID int) address.TemplateTag

	// RecommendModules ranks catalog modules against a profile.
	RecommendModules(profile model.UserProfile, k int) ([]vector.SearchResult, error)

	// Stats exposes service statistics for monitoring.
	Stats() map[string]any
}

// Server wires HTTP routes for the diagnostic API.
type Server struct {
	healthHandler    *HealthHandler
	stateHandler     *StateHandler
	suggestHandler   *SuggestHandler
	recommendHandler *RecommendHandler
	statsHandler     *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		stateHandler:     NewStateHandler(deps),
		suggestHandler:   NewSuggestHandler(deps),
		recommendHandler: NewRecommendHandler(deps),
		statsHandler:     NewStatsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/state", MetricsMiddleware(s.stateHandler.HandleState, "state"))
	mux.HandleFunc("/suggest", MetricsMiddleware(s.suggestHandler.HandleSuggest, "suggest"))
	mux.HandleFunc("/recommend", MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
