package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

func TestCatalogCache_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	cache := NewCatalogCache()

	snap := &domain.CatalogSnapshot{
		Version:    "1.2",
		SlideTypes: map[string][]string{"metrics": {"metrics_3col", "metrics_4col"}},
		FetchedAt:  time.Now(),
	}
	require.NoError(t, cache.SaveSnapshot(ctx, "http://text:8000", snap))

	// Mutating the original must not change the cached copy
	snap.SlideTypes["metrics"][0] = "changed"

	loaded, err := cache.LoadSnapshot(ctx, "http://text:8000")
	require.NoError(t, err)
	assert.Equal(t, "1.2", loaded.Version)
	assert.Equal(t, []string{"metrics_3col", "metrics_4col"}, loaded.SlideTypes["metrics"])
}

func TestCatalogCache_LoadMissing(t *testing.T) {
	_, err := NewCatalogCache().LoadSnapshot(context.Background(), "nowhere")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
