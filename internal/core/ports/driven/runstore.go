package driven

import (
	"context"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// RunStore persists routing run summaries.
type RunStore interface {
	// SaveRun stores a run record.
	SaveRun(ctx context.Context, run *domain.RunRecord) error

	// GetRun retrieves a run by ID. Returns domain.ErrNotFound if absent.
	GetRun(ctx context.Context, id string) (*domain.RunRecord, error)

	// ListRuns returns the most recent runs, newest first.
	// A limit of zero or less returns all runs.
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// DeleteRun removes a run. Returns domain.ErrNotFound if absent.
	DeleteRun(ctx context.Context, id string) error
}
