package service

import (
	"context"
	"fmt"

	"github.com/okian/expertcalc/internal/domain/model"
	"github.com/okian/expertcalc/internal/domain/ownedset"
	"github.com/okian/expertcalc/internal/domain/types"
	"github.com/okian/expertcalc/pkg/logger"
	"github.com/okian/expertcalc/pkg/metrics"
)

// Session is an interactive selection that recomputes the ranking on
// every mutation. It starts from the story experts.
type Session struct {
	svc     *Service
	tracker ownedset.Tracker
	logger  logger.Logger
}

// NewSession creates a session seeded with the initial owned set.
func NewSession(svc *Service) *Session {
	return &Session{
		svc:     svc,
		tracker: ownedset.NewInMemoryTracker(ownedset.WithInitial(svc.InitialOwned().IDs()...)),
		logger:  svc.logger.Named("session"),
	}
}

// Owned returns the current selection.
func (s *Session) Owned(ctx context.Context) model.OwnedSet {
	return s.tracker.Snapshot(ctx)
}

// Has reports whether id is currently selected.
func (s *Session) Has(ctx context.Context, id string) bool {
	return s.tracker.Has(ctx, id)
}

// Toggle flips id and returns the recomputed ranking.
func (s *Session) Toggle(ctx context.Context, id string) ([]types.Recommendation, error) {
	if !s.svc.Known(id) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExpert, id)
	}

	added := s.tracker.Toggle(ctx, id)
	metrics.RecordToggle(added)
	s.logger.Debug(ctx, "owned set changed",
		logger.String("expert", id),
		logger.Bool("owned", added),
		logger.Int("size", int(s.tracker.Size())),
	)
	return s.Recommendations(ctx)
}

// Reset restores the initial owned set and returns the recomputed ranking.
func (s *Session) Reset(ctx context.Context) ([]types.Recommendation, error) {
	s.tracker.Reset(ctx, s.svc.InitialOwned())
	return s.Recommendations(ctx)
}

// Recommendations ranks the roster for the current selection.
func (s *Session) Recommendations(ctx context.Context) ([]types.Recommendation, error) {
	return s.svc.Recommend(ctx, s.tracker.Snapshot(ctx))
}
