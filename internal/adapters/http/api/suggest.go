package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopmorph/morph/internal/domain/address"
)

// suggestRequest mirrors the suggestion payload of the push channel, so the
// same contract can be exercised without a live websocket.
type suggestRequest struct {
	TemplateID *int `json:"template_id"`
}

type suggestResponse struct {
	TemplateID int                 `json:"template_id"`
	Template   address.TemplateTag `json:"template"`
	ModuleID   int                 `json:"module_id"`
}

// SuggestHandler applies pushed template suggestions.
type SuggestHandler struct {
	deps Dependencies
}

// NewSuggestHandler creates a new suggestion handler.
func NewSuggestHandler(deps Dependencies) *SuggestHandler {
	return &SuggestHandler{deps: deps}
}

// HandleSuggest handles POST /suggest requests.
func (h *SuggestHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if req.TemplateID == nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingTemplateID)
		return
	}

	tag := h.deps.ApplySuggestion(*req.TemplateID)
	writeJSON(w, http.StatusOK, suggestResponse{
		TemplateID: *req.TemplateID,
		Template:   tag,
		ModuleID:   h.deps.CurrentModuleID(),
	})
}
