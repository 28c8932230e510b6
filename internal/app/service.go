// Package service wires the catalog, evaluator and ranker into the
// operations used by the HTTP API, the CLI and the TUI.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/expertcalc/internal/domain/gain"
	"github.com/okian/expertcalc/internal/domain/model"
	"github.com/okian/expertcalc/internal/domain/requirement"
	"github.com/okian/expertcalc/internal/domain/types"
	"github.com/okian/expertcalc/pkg/logger"
	"github.com/okian/expertcalc/pkg/metrics"
)

// Service is immutable after New and safe for concurrent use.
type Service struct {
	catalog *model.Catalog
	ranker  *gain.Ranker
	roster  []string
	initial model.OwnedSet
	source  string

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource records where the catalog was loaded from, for stats.
func WithSource(source string) Option {
	return func(s *Service) {
		s.source = source
	}
}

// New constructs a Service over catalog.
func New(catalog *model.Catalog, opts ...Option) (*Service, error) {
	if catalog == nil {
		return nil, ErrNoCatalog
	}

	s := &Service{
		catalog: catalog,
		ranker:  gain.NewRanker(requirement.NewEvaluator(catalog)),
		roster:  Roster(catalog),
		initial: InitialOwned(catalog),
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// InitialOwned returns the experts every player starts with: the story ones.
func InitialOwned(catalog *model.Catalog) model.OwnedSet {
	var ids []string
	for id, e := range catalog.Experts {
		if e.IsStory() {
			ids = append(ids, id)
		}
	}
	return model.NewOwnedSet(ids...)
}

// Roster returns every expert id in lexicographic order.
func Roster(catalog *model.Catalog) []string {
	return catalog.ExpertIDs()
}

// Catalog returns the loaded dataset. Callers must not mutate it.
func (s *Service) Catalog() *model.Catalog {
	return s.catalog
}

// Roster returns a copy of the sorted roster.
func (s *Service) Roster() []string {
	out := make([]string, len(s.roster))
	copy(out, s.roster)
	return out
}

// InitialOwned returns the story experts.
func (s *Service) InitialOwned() model.OwnedSet {
	return s.initial
}

// Known reports whether id is in the roster.
func (s *Service) Known(id string) bool {
	_, ok := s.catalog.Expert(id)
	return ok
}

// Rank returns the raw ranked gains for owned.
func (s *Service) Rank(ctx context.Context, owned model.OwnedSet) ([]gain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	ranked := gain.Rank(s.ranker.Gains(owned, s.roster, s.catalog.Stages))

	positive := 0
	for _, r := range ranked {
		if r.Total() > 0 {
			positive++
		}
	}
	candidates := len(s.roster)
	for _, id := range s.roster {
		if owned.Has(id) {
			candidates--
		}
	}
	metrics.RecordEvaluations(gain.Evaluations(owned, s.roster, s.catalog.Stages))
	metrics.RecordCandidatesEvaluated(candidates)
	metrics.RecordRecommendation(float64(time.Since(start).Microseconds())/1000, owned.Len(), positive)

	s.logger.Debug(ctx, "recommendations computed",
		logger.Int("owned", owned.Len()),
		logger.Int("candidates", candidates),
		logger.Int("positive", positive),
	)
	return ranked, nil
}

// Recommend ranks the roster for owned and decorates it for display.
func (s *Service) Recommend(ctx context.Context, owned model.OwnedSet) ([]types.Recommendation, error) {
	ranked, err := s.Rank(ctx, owned)
	if err != nil {
		return nil, err
	}

	out := make([]types.Recommendation, len(ranked))
	for i, r := range ranked {
		rec := types.Recommendation{
			Position:   i + 1,
			Expert:     s.ExpertView(r.ID),
			Owned:      r.Owned,
			TotalGain:  r.Total(),
			NormalGain: s.stageGains(model.TierNormal, r.NormalGain),
			EliteGain:  s.stageGains(model.TierElite, r.EliteGain),
		}
		switch {
		case r.Owned:
			rec.Note = types.NoteOwned
		case rec.TotalGain == 0:
			rec.Note = types.NoteNoGain
		default:
			rec.Medal = types.MedalFor(rec.Position)
		}
		out[i] = rec
	}
	return out, nil
}

// Experts describes the whole roster in order.
func (s *Service) Experts() []types.ExpertView {
	out := make([]types.ExpertView, len(s.roster))
	for i, id := range s.roster {
		out[i] = s.ExpertView(id)
	}
	return out
}

// ExpertView renders an expert with labels. Unknown ids yield a bare view.
func (s *Service) ExpertView(id string) types.ExpertView {
	e, ok := s.catalog.Expert(id)
	if !ok {
		return types.ExpertView{ID: id, Genres: []string{}, Traits: []types.TraitView{}}
	}

	v := types.ExpertView{
		ID:     id,
		Obtain: string(e.Obtain),
		Genres: make([]string, len(e.Genres)),
		Traits: make([]types.TraitView, len(e.Traits)),
	}
	if e.IsStory() {
		v.Acquisition = types.StoryObtain
	} else {
		v.Cost = e.Cost
		v.RequiredLevel = e.RequiredLevel
		v.Acquisition = types.PurchaseObtain(e.Cost, e.RequiredLevel)
	}
	for i, g := range e.Genres {
		v.Genres[i] = s.catalog.GenreLabel(g)
	}
	for i, t := range e.Traits {
		v.Traits[i] = s.traitView(t)
	}
	return v
}

// Stages renders every stage of tier.
func (s *Service) Stages(tier model.Tier) ([]types.StageView, error) {
	if _, ok := model.ParseTier(string(tier)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	stages := s.catalog.Stages[tier]
	out := make([]types.StageView, len(stages))
	for i, st := range stages {
		out[i] = s.stageView(tier, st)
	}
	return out, nil
}

// GetStats returns dataset statistics for monitoring.
func (s *Service) GetStats() types.Stats {
	counts := s.catalog.StageCounts()
	metrics.UpdateCatalog(len(s.catalog.Experts), counts)

	return types.Stats{
		Experts:       len(s.catalog.Experts),
		StoryExperts:  s.initial.Len(),
		Stages:        counts,
		Genres:        len(s.catalog.Genres),
		Traits:        len(s.catalog.Traits),
		DatasetSource: s.source,
	}
}

func (s *Service) stageGains(tier model.Tier, states []model.StageState) []types.StageGain {
	out := make([]types.StageGain, 0, len(states))
	for _, st := range states {
		stage, ok := s.catalog.Stage(tier, st.StageID)
		if !ok {
			stage = model.Stage{ID: st.StageID}
		}
		out = append(out, types.StageGain{
			StageView: s.stageView(tier, stage),
			Status:    st.Status.String(),
			Level:     int(st.Status),
		})
	}
	return out
}

func (s *Service) stageView(tier model.Tier, st model.Stage) types.StageView {
	v := types.StageView{
		ID:           st.ID,
		Tier:         string(tier),
		Requirements: make([]types.RequirementView, len(st.Requirements)),
	}
	for i, r := range st.Requirements {
		v.Requirements[i] = s.requirementView(r)
	}
	return v
}

// requirementView renders "Genre | Trait", omitting unset constraints.
func (s *Service) requirementView(r model.Requirement) types.RequirementView {
	var v types.RequirementView
	parts := make([]string, 0, 2)
	if r.Genre != "" {
		v.Genre = s.catalog.GenreLabel(r.Genre)
		parts = append(parts, v.Genre)
	}
	if r.Trait != "" {
		t := s.traitView(r.Trait)
		v.Trait = &t
		parts = append(parts, t.Label)
	}
	if len(parts) == 0 {
		v.Text = "any"
	} else {
		v.Text = strings.Join(parts, types.RequirementSep)
	}
	return v
}

func (s *Service) traitView(id string) types.TraitView {
	info := s.catalog.TraitInfo(id)
	return types.TraitView{ID: id, Label: info.Label, Color: info.Color}
}
