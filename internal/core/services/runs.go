package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
	"github.com/custodia-labs/deckroute/internal/core/ports/driving"
)

// Ensure RunService implements the interface.
var _ driving.RunHistory = (*RunService)(nil)

// RunService records routing run summaries.
type RunService struct {
	store driven.RunStore
}

// NewRunService creates a new run service.
func NewRunService(store driven.RunStore) *RunService {
	return &RunService{store: store}
}

// Record stores the summary of a completed run.
func (s *RunService) Record(
	ctx context.Context,
	source, title string,
	startedAt time.Time,
	result *domain.RoutingResult,
) (*domain.RunRecord, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: nil routing result", domain.ErrInvalidInput)
	}
	rec := domain.NewRunRecord(uuid.NewString(), source, title, startedAt, result)
	if err := s.store.SaveRun(ctx, &rec); err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}
	return &rec, nil
}

// List returns the most recent runs, newest first.
func (s *RunService) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	return s.store.ListRuns(ctx, limit)
}

// Get returns one run by ID.
func (s *RunService) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: run id required", domain.ErrInvalidInput)
	}
	return s.store.GetRun(ctx, id)
}

// Delete removes one run by ID.
func (s *RunService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: run id required", domain.ErrInvalidInput)
	}
	return s.store.DeleteRun(ctx, id)
}
