package driving

import (
	"context"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// PresentationRouter turns a strawman into per-slide generation calls.
type PresentationRouter interface {
	// RoutePresentation prepares, validates and dispatches every slide in order.
	// Upfront validation failures return a *domain.ValidationError and nothing
	// is dispatched. Per-slide failures are recorded in the result, never returned.
	RoutePresentation(ctx context.Context, strawman *domain.Strawman, sessionID string) (*domain.RoutingResult, error)
}

// Planner runs the preparation pass without dispatching anything.
type Planner interface {
	// Plan assigns layouts, classifications and variants in place and
	// reports the decisions.
	Plan(ctx context.Context, strawman *domain.Strawman, sessionID string) (*domain.PreparationReport, error)
}

// RouteOptions are per-run overrides applied on top of the stored settings.
type RouteOptions struct {
	// DeriveTitles fills missing titles from the narrative instead of
	// rejecting the strawman.
	DeriveTitles bool

	// Reclassify recomputes classifications even for prepared slides.
	Reclassify bool

	// SkipHero forces hero slides to be skipped.
	SkipHero bool

	// Seed overrides the configured selection seed when non-zero.
	Seed uint64
}

// RouterFactory builds a router for one run from the current settings.
type RouterFactory func(opts RouteOptions) (PresentationRouter, error)

// PlannerFactory builds a planner for one run from the current settings.
type PlannerFactory func(opts RouteOptions) (Planner, error)

// ProgressReporter is implemented by routers that report per-slide progress.
type ProgressReporter interface {
	// SetObserver replaces the progress observer. nil disables reporting.
	SetObserver(fn func(domain.SlideEvent))
}
