// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/okian/expertcalc/internal/domain/model"
	"github.com/okian/expertcalc/internal/domain/types"
	"github.com/okian/expertcalc/internal/validation"
)

const maxBodyBytes = 1 << 20

// RecommendationDependencies defines the interface for ranking requests.
type RecommendationDependencies interface {
	Recommend(ctx context.Context, owned model.OwnedSet) ([]types.Recommendation, error)
	InitialOwned() model.OwnedSet
}

// RecommendationsHandler handles ranking requests. The owned set travels
// with each request; nothing is kept between calls.
type RecommendationsHandler struct {
	deps     RecommendationDependencies
	maxOwned int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies, maxOwned int) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps, maxOwned: maxOwned}
}

// recommendRequest mirrors the OpenAPI schema for POST /recommendations.
type recommendRequest struct {
	Owned []string `json:"owned" validate:"required,min=1,unique,dive,required"`
}

type recommendResponse struct {
	Owned           []string               `json:"owned"`
	Recommendations []types.Recommendation `json:"recommendations"`
}

// HandlePost handles POST /recommendations requests.
func (h *RecommendationsHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recommendations"
	var req recommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.validate(req.Owned); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", WrapKind(op, ErrBadRequest, err))
		return
	}
	h.respond(w, r, op, model.NewOwnedSet(req.Owned...))
}

// HandleGet handles GET /recommendations?owned=a,b requests. Without the
// owned parameter the initial owned set is used.
func (h *RecommendationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_recommendations"
	raw, present := r.URL.Query()["owned"]
	if !present {
		h.respond(w, r, op, h.deps.InitialOwned())
		return
	}

	var ids []string
	for _, v := range raw {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	if err := validation.ValidateVar("owned", ids, fmt.Sprintf("max=%d", h.maxOwned)); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", WrapKind(op, ErrBadRequest, err))
		return
	}
	h.respond(w, r, op, model.NewOwnedSet(ids...))
}

func (h *RecommendationsHandler) validate(owned []string) error {
	if err := validation.ValidateStruct(recommendRequest{Owned: owned}); err != nil {
		return err
	}
	return validation.ValidateVar("owned", owned, fmt.Sprintf("max=%d", h.maxOwned))
}

func (h *RecommendationsHandler) respond(w http.ResponseWriter, r *http.Request, op string, owned model.OwnedSet) {
	recs, err := h.deps.Recommend(r.Context(), owned)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{Owned: owned.IDs(), Recommendations: recs})
}
