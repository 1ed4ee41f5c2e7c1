package driving

import (
	"context"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// CatalogBrowser exposes the variant catalog a routing session would use.
type CatalogBrowser interface {
	// Catalog loads the catalog and reports where it came from
	// ("remote" or "cache"). Returns domain.ErrCatalogUnavailable when
	// neither the service nor the cache can provide one.
	Catalog(ctx context.Context) (*domain.CatalogSnapshot, string, error)
}
