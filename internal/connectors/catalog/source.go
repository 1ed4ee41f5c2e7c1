// Package catalog fetches the variant catalog from the text service.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/deckroute/internal/connectors/httpx"
	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.VariantCatalogSource = (*Source)(nil)

// variantsResponse is the payload of the variants endpoint.
type variantsResponse struct {
	Version    string               `json:"version"`
	SlideTypes map[string]slideType `json:"slide_types"`
}

type slideType struct {
	Variants []variant `json:"variants"`
}

type variant struct {
	ID          string `json:"variant_id"`
	DisplayName string `json:"display_name,omitempty"`
}

// Source reads the catalog over HTTP.
type Source struct {
	http *httpx.Client
	now  func() time.Time
}

// New creates a catalog source for baseURL.
func New(baseURL string, opts ...httpx.Option) (*Source, error) {
	hc, err := httpx.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Source{http: hc, now: time.Now}, nil
}

// Name identifies the catalog in the snapshot cache.
func (s *Source) Name() string {
	return s.http.BaseURL()
}

// FetchCatalog fetches and normalises the catalog. Slide types without
// variants are dropped; a catalog with no variants at all is invalid.
func (s *Source) FetchCatalog(ctx context.Context) (*domain.CatalogSnapshot, error) {
	var resp variantsResponse
	if err := s.http.GetJSON(ctx, driven.VariantsEndpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch variant catalog: %w", err)
	}

	snapshot := &domain.CatalogSnapshot{
		Version:    resp.Version,
		SlideTypes: make(map[string][]string, len(resp.SlideTypes)),
		FetchedAt:  s.now(),
	}
	for key, st := range resp.SlideTypes {
		seen := make(map[string]struct{}, len(st.Variants))
		var ids []string
		for _, v := range st.Variants {
			id := strings.TrimSpace(v.ID)
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		if len(ids) > 0 {
			snapshot.SlideTypes[key] = ids
		}
	}
	if snapshot.IsEmpty() {
		return nil, fmt.Errorf("%w: catalog has no variants", domain.ErrInvalidResponse)
	}
	return snapshot, nil
}
