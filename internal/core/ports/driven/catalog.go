package driven

import (
	"context"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// VariantCatalogSource fetches the remote variant catalog.
type VariantCatalogSource interface {
	// FetchCatalog returns the current catalog of slide-type keys to variants.
	FetchCatalog(ctx context.Context) (*domain.CatalogSnapshot, error)

	// Name identifies the source, used as the cache key.
	Name() string
}

// CatalogCache persists the last successfully fetched catalog per source.
type CatalogCache interface {
	// SaveSnapshot stores or replaces the snapshot for a source.
	SaveSnapshot(ctx context.Context, source string, snapshot *domain.CatalogSnapshot) error

	// LoadSnapshot returns the last snapshot for a source.
	// Returns domain.ErrNotFound if none has been saved.
	LoadSnapshot(ctx context.Context, source string) (*domain.CatalogSnapshot, error)
}
