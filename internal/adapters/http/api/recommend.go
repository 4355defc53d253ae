package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopmorph/morph/internal/domain/address"
	"github.com/shopmorph/morph/internal/domain/model"
)

const defaultRecommendLimit = 5

// recommendRequest carries the profile to match and how many modules to
// return.
type recommendRequest struct {
	Profile model.UserProfile `json:"profile"`
	Limit   int               `json:"limit"`
}

type recommendation struct {
	ModuleID int         `json:"module_id"`
	Module   address.Tag `json:"module"`
	Score    float64     `json:"score"`
}

// RecommendHandler ranks catalog modules against a supplied profile.
type RecommendHandler struct {
	deps Dependencies
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps Dependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// HandleRecommend handles POST /recommend requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	req := recommendRequest{Profile: model.DefaultProfile(), Limit: defaultRecommendLimit}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultRecommendLimit
	}

	results, err := h.deps.RecommendModules(req.Profile, req.Limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	out := make([]recommendation, 0, len(results))
	for _, res := range results {
		out = append(out, recommendation{
			ModuleID: res.ID,
			Module:   address.Decode(res.ID),
			Score:    res.Score,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
