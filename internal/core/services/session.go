package services

import (
	"context"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
)

// SessionConfig configures the per-session routing objects.
type SessionConfig struct {
	// CatalogSource fetches the variant catalog. May be nil.
	CatalogSource driven.VariantCatalogSource

	// CatalogCache holds the last fetched catalog. May be nil.
	CatalogCache driven.CatalogCache

	// Diversity holds the tracker thresholds.
	Diversity domain.DiversitySettings

	// Seed seeds variant selection. Zero means a time-based seed.
	Seed uint64
}

// RoutingSession bundles the stateful objects that serve one routing
// session. Sessions are never shared between concurrent runs.
type RoutingSession struct {
	ID         string
	Classifier *SlideClassifier
	Tracker    *DiversityTracker
	Catalog    *VariantCatalog
	Selector   *VariantSelector
}

// NewRoutingSession creates a session, loading the variant catalog once.
func NewRoutingSession(ctx context.Context, id string, cfg SessionConfig) *RoutingSession {
	catalog := LoadVariantCatalog(ctx, cfg.CatalogSource, cfg.CatalogCache)
	return &RoutingSession{
		ID:         id,
		Classifier: NewSlideClassifier(),
		Tracker:    NewDiversityTracker(cfg.Diversity),
		Catalog:    catalog,
		Selector:   NewVariantSelector(catalog, cfg.Seed),
	}
}

// SessionFactory creates a fresh session for a routing run.
type SessionFactory func(ctx context.Context, sessionID string) *RoutingSession

// NewSessionFactory returns a factory producing sessions from cfg.
func NewSessionFactory(cfg SessionConfig) SessionFactory {
	return func(ctx context.Context, sessionID string) *RoutingSession {
		return NewRoutingSession(ctx, sessionID, cfg)
	}
}
