package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// RunHistory records and reads routing run summaries.
type RunHistory interface {
	// Record stores the summary of a completed run and returns it.
	Record(ctx context.Context, source, title string, startedAt time.Time, result *domain.RoutingResult) (*domain.RunRecord, error)

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Get returns one run by ID.
	Get(ctx context.Context, id string) (*domain.RunRecord, error)

	// Delete removes one run by ID.
	Delete(ctx context.Context, id string) error
}
