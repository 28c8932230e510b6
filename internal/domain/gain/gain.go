// Package gain ranks candidate experts by how many stages they would improve.
package gain

import (
	"sort"

	"github.com/okian/expertcalc/internal/domain/model"
	"github.com/okian/expertcalc/internal/domain/requirement"
)

// Result is the improvement a single roster entry brings to the owned set.
// Owned entries carry no gains.
type Result struct {
	ID         string
	Owned      bool
	NormalGain []model.StageState
	EliteGain  []model.StageState
}

// Total returns the number of improved stages across both tiers.
func (r Result) Total() int {
	return len(r.NormalGain) + len(r.EliteGain)
}

// Tier returns the gained stages of a tier.
func (r Result) Tier(t model.Tier) []model.StageState {
	switch t {
	case model.TierNormal:
		return r.NormalGain
	case model.TierElite:
		return r.EliteGain
	default:
		return nil
	}
}

// Ranker computes gains against a fixed evaluator.
type Ranker struct {
	eval *requirement.Evaluator
}

// NewRanker creates a Ranker backed by eval.
func NewRanker(eval *requirement.Evaluator) *Ranker {
	return &Ranker{eval: eval}
}

// Gains returns one Result per roster id, in roster order. For every
// non-owned id the owned set is extended by that id alone and each tier is
// re-evaluated; stages whose level strictly rises are reported with their
// new status.
func (r *Ranker) Gains(owned model.OwnedSet, roster []string, stages map[model.Tier][]model.Stage) []Result {
	baseline := make(map[model.Tier]map[string]model.Status, len(stages))
	for _, tier := range model.Tiers() {
		baseline[tier] = index(r.eval.Evaluate(owned, stages[tier]))
	}

	out := make([]Result, 0, len(roster))
	for _, id := range roster {
		if owned.Has(id) {
			out = append(out, Result{ID: id, Owned: true})
			continue
		}
		with := owned.With(id)
		res := Result{ID: id}
		res.NormalGain = improved(baseline[model.TierNormal], r.eval.Evaluate(with, stages[model.TierNormal]))
		res.EliteGain = improved(baseline[model.TierElite], r.eval.Evaluate(with, stages[model.TierElite]))
		out = append(out, res)
	}
	return out
}

// Evaluations returns how many stage evaluations Gains performs for the given inputs.
func Evaluations(owned model.OwnedSet, roster []string, stages map[model.Tier][]model.Stage) int {
	perPass := 0
	for _, tier := range model.Tiers() {
		perPass += len(stages[tier])
	}
	candidates := 0
	for _, id := range roster {
		if !owned.Has(id) {
			candidates++
		}
	}
	return perPass * (candidates + 1)
}

// Rank returns a sorted copy of results: total gain descending, then id
// ascending. Owned and zero-gain entries stay in and sort last.
func Rank(results []Result) []Result {
	out := make([]Result, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Total(), out[j].Total()
		if ti != tj {
			return ti > tj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func index(states []model.StageState) map[string]model.Status {
	m := make(map[string]model.Status, len(states))
	for _, s := range states {
		m[s.StageID] = s.Status
	}
	return m
}

// improved keeps the entries of next whose level exceeds the baseline entry
// with the same stage id.
func improved(base map[string]model.Status, next []model.StageState) []model.StageState {
	var out []model.StageState
	for _, s := range next {
		if s.Status > base[s.StageID] {
			out = append(out, s)
		}
	}
	return out
}
