package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driving"
)

// Ensure PlanService implements the interface.
var _ driving.Planner = (*PlanService)(nil)

// PlanService runs the preparation pass on its own, for previewing what
// routing would do.
type PlanService struct {
	newSession SessionFactory
	opts       PrepareOptions
}

// NewPlanService creates a new plan service.
func NewPlanService(newSession SessionFactory, opts PrepareOptions) *PlanService {
	return &PlanService{newSession: newSession, opts: opts}
}

// Plan prepares the strawman in place and reports the decisions.
func (s *PlanService) Plan(ctx context.Context, strawman *domain.Strawman, sessionID string) (*domain.PreparationReport, error) {
	if strawman == nil || len(strawman.Slides) == 0 {
		return nil, fmt.Errorf("%w: strawman has no slides", domain.ErrInvalidInput)
	}
	if s.newSession == nil {
		return nil, fmt.Errorf("plan: %w: no session factory", domain.ErrServiceNotConfigured)
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	strawman.Normalise()
	if err := strawman.CheckPositions(); err != nil {
		return nil, err
	}
	session := s.newSession(ctx, sessionID)
	return NewStrawmanPreparer(session, s.opts).Prepare(strawman), nil
}
