// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/expertcalc/internal/domain/model"
	"github.com/okian/expertcalc/internal/domain/types"
)

// ExpertDependencies defines the interface for roster reads.
type ExpertDependencies interface {
	Experts() []types.ExpertView
	InitialOwned() model.OwnedSet
}

// ExpertsHandler handles roster requests.
type ExpertsHandler struct {
	deps ExpertDependencies
}

// NewExpertsHandler creates a new experts handler.
func NewExpertsHandler(deps ExpertDependencies) *ExpertsHandler {
	return &ExpertsHandler{deps: deps}
}

// HandleList handles GET /experts requests.
func (h *ExpertsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Experts())
}

// HandleInitial handles GET /experts/initial requests.
func (h *ExpertsHandler) HandleInitial(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ownedResponse{Owned: h.deps.InitialOwned().IDs()})
}
