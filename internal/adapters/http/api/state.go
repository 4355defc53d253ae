package api

import (
	"net/http"

	"github.com/shopmorph/morph/internal/domain/address"
	"github.com/shopmorph/morph/internal/domain/model"
)

// stateResponse is the live rendering and motion snapshot.
type stateResponse struct {
	ModuleID int              `json:"module_id"`
	Module   address.Tag      `json:"module"`
	Motor    model.MotorState `json:"motor"`
}

// StateHandler serves the live session state.
type StateHandler struct {
	deps Dependencies
}

// NewStateHandler creates a new state handler.
func NewStateHandler(deps Dependencies) *StateHandler {
	return &StateHandler{deps: deps}
}

// HandleState handles GET /state requests.
func (h *StateHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse{
		ModuleID: h.deps.CurrentModuleID(),
		Module:   h.deps.CurrentModule(),
		Motor:    h.deps.MotorState(),
	})
}
