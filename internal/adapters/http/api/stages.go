// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/expertcalc/internal/domain/model"
	"github.com/okian/expertcalc/internal/domain/types"
)

// StageDependencies defines the interface for stage reads.
type StageDependencies interface {
	Stages(tier model.Tier) ([]types.StageView, error)
}

// StagesHandler handles stage requests.
type StagesHandler struct {
	deps StageDependencies
}

// NewStagesHandler creates a new stages handler.
func NewStagesHandler(deps StageDependencies) *StagesHandler {
	return &StagesHandler{deps: deps}
}

// HandleGet handles GET /stages/{tier} requests.
func (h *StagesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_stages"
	tier, ok := model.ParseTier(chi.URLParam(r, "tier"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	stages, err := h.deps.Stages(tier)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, stages)
}
