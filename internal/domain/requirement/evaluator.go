// Package requirement computes stage satisfaction for an owned set.
package requirement

import (
	"github.com/okian/expertcalc/internal/domain/model"
)

// ExpertLookup resolves expert ids against the static dataset.
type ExpertLookup interface {
	Expert(id string) (model.Expert, bool)
}

// Evaluator derives StageState values from an owned set. It holds no state
// beyond the injected lookup and is safe for concurrent use.
type Evaluator struct {
	experts ExpertLookup
}

// NewEvaluator creates an Evaluator over the given expert lookup.
func NewEvaluator(experts ExpertLookup) *Evaluator {
	return &Evaluator{experts: experts}
}

// Evaluate returns one StageState per stage, in input order.
func (e *Evaluator) Evaluate(owned model.OwnedSet, stages []model.Stage) []model.StageState {
	ownedExperts := e.resolve(owned)
	out := make([]model.StageState, len(stages))
	for i, s := range stages {
		out[i] = model.StageState{StageID: s.ID, Status: Status(ownedExperts, s)}
	}
	return out
}

// resolve drops ids the dataset does not know; they can never match.
func (e *Evaluator) resolve(owned model.OwnedSet) []model.Expert {
	experts := make([]model.Expert, 0, owned.Len())
	for _, id := range owned.IDs() {
		if x, ok := e.experts.Expert(id); ok {
			experts = append(experts, x)
		}
	}
	return experts
}

// Status applies the stage policy to an already resolved owned roster:
// all requirements met is Full, exactly one of two is Partial, anything
// else is Unsatisfied. Single-requirement stages are therefore binary.
func Status(owned []model.Expert, stage model.Stage) model.Status {
	total := len(stage.Requirements)
	satisfied := 0
	for _, req := range stage.Requirements {
		if Satisfied(owned, req) {
			satisfied++
		}
	}
	switch {
	case satisfied == total:
		return model.StatusFull
	case total == 2 && satisfied == 1:
		return model.StatusPartial
	default:
		return model.StatusUnsatisfied
	}
}

// Satisfied reports whether at least one owned expert matches req.
func Satisfied(owned []model.Expert, req model.Requirement) bool {
	for _, x := range owned {
		if x.Matches(req) {
			return true
		}
	}
	return false
}
