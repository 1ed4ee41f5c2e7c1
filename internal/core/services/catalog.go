package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
	"github.com/custodia-labs/deckroute/internal/core/ports/driving"
	"github.com/custodia-labs/deckroute/internal/logger"
)

// Catalog origins reported by VariantCatalog.Source.
const (
	CatalogFromRemote = "remote"
	CatalogFromCache  = "cache"
	CatalogNone       = "none"
)

// catalogKeys maps taxonomy labels to catalog slide-type keys.
// Pyramid and analytics slides take no variant and have no key.
var catalogKeys = map[domain.Classification]string{
	domain.ClassTitleSlide:          "hero_title",
	domain.ClassSectionDivider:      "hero_section",
	domain.ClassClosingSlide:        "hero_closing",
	domain.ClassImpactQuote:         "impact_quote",
	domain.ClassMetricsGrid:         "metrics",
	domain.ClassMatrix2x2:           "matrix",
	domain.ClassGrid3x3:             "grid",
	domain.ClassStyledTable:         "table",
	domain.ClassBilateralComparison: "comparison",
	domain.ClassSequential3Col:      "sequential",
	domain.ClassHybrid1x2x2:         "hybrid",
	domain.ClassAsymmetric8x4:       "asymmetric",
	domain.ClassSingleColumn:        "single_column",
}

// CatalogKey returns the catalog slide-type key for a classification.
func CatalogKey(class domain.Classification) (string, bool) {
	key, ok := catalogKeys[class]
	return key, ok
}

// catalogKeyLayout returns the layout the variants under a key belong to.
func catalogKeyLayout(key string) (domain.Layout, bool) {
	for class, k := range catalogKeys {
		if k != key {
			continue
		}
		if class.IsHero() {
			return domain.LayoutHero, true
		}
		return domain.LayoutContentShell, true
	}
	return "", false
}

// VariantCatalog is a session's view of the remote variant catalog.
// It is loaded once and never refreshed.
type VariantCatalog struct {
	snapshot *domain.CatalogSnapshot
	source   string
}

// NewVariantCatalog wraps an already fetched snapshot. A nil or empty
// snapshot yields an unavailable catalog.
func NewVariantCatalog(snapshot *domain.CatalogSnapshot, source string) *VariantCatalog {
	if snapshot.IsEmpty() {
		return &VariantCatalog{source: CatalogNone}
	}
	return &VariantCatalog{snapshot: snapshot, source: source}
}

// LoadVariantCatalog fetches the catalog from src. A successful fetch is
// written to cache. When the fetch fails the cached snapshot is used, and
// when there is none the catalog is unavailable. It never returns nil.
func LoadVariantCatalog(ctx context.Context, src driven.VariantCatalogSource, cache driven.CatalogCache) *VariantCatalog {
	if src == nil {
		logger.Debug("variant catalog: no source configured")
		return NewVariantCatalog(nil, CatalogNone)
	}

	started := time.Now()
	snapshot, err := src.FetchCatalog(ctx)
	logger.Since(started, "variant catalog: fetch from %s", src.Name())
	if err == nil && !snapshot.IsEmpty() {
		if cache != nil {
			if err := cache.SaveSnapshot(ctx, src.Name(), snapshot); err != nil {
				logger.Warn("variant catalog: cache snapshot: %v", err)
			}
		}
		logger.Info("variant catalog: %d variants across %d slide types", snapshot.TotalVariants(), len(snapshot.SlideTypes))
		return NewVariantCatalog(snapshot, CatalogFromRemote)
	}
	if err == nil {
		err = domain.ErrNoVariants
	}
	logger.Warn("variant catalog: fetch from %s failed: %v", src.Name(), err)

	if cache == nil {
		return NewVariantCatalog(nil, CatalogNone)
	}
	cached, cerr := cache.LoadSnapshot(ctx, src.Name())
	if cerr != nil {
		if !errors.Is(cerr, domain.ErrNotFound) {
			logger.Warn("variant catalog: load cached snapshot: %v", cerr)
		}
		return NewVariantCatalog(nil, CatalogNone)
	}
	logger.Info("variant catalog: using snapshot cached at %s", cached.FetchedAt.Format("2006-01-02 15:04"))
	return NewVariantCatalog(cached, CatalogFromCache)
}

// Available returns true if the catalog holds any variants.
func (c *VariantCatalog) Available() bool {
	return c != nil && c.snapshot != nil
}

// Source returns where the catalog came from: remote, cache or none.
func (c *VariantCatalog) Source() string {
	if c == nil {
		return CatalogNone
	}
	return c.source
}

// VariantsFor returns the ordered variants for a catalog slide-type key.
func (c *VariantCatalog) VariantsFor(slideType string) ([]string, error) {
	if !c.Available() {
		return nil, domain.ErrCatalogUnavailable
	}
	variants := c.snapshot.SlideTypes[slideType]
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoVariants, slideType)
	}
	out := make([]string, len(variants))
	copy(out, variants)
	return out, nil
}

// TotalVariants returns the number of variants across all slide types.
func (c *VariantCatalog) TotalVariants() int {
	if !c.Available() {
		return 0
	}
	return c.snapshot.TotalVariants()
}

// SlideTypes returns the catalog's slide-type keys, sorted.
func (c *VariantCatalog) SlideTypes() []string {
	if !c.Available() {
		return nil
	}
	keys := make([]string, 0, len(c.snapshot.SlideTypes))
	for k := range c.snapshot.SlideTypes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns the underlying snapshot, or nil when unavailable.
func (c *VariantCatalog) Snapshot() *domain.CatalogSnapshot {
	if !c.Available() {
		return nil
	}
	return c.snapshot
}

// variantLayout reports the layout of a known variant id. An id the
// catalog files under both a hero and a content key is treated as unknown.
func (c *VariantCatalog) variantLayout(variantID string) (domain.Layout, bool) {
	if !c.Available() {
		return "", false
	}
	var found domain.Layout
	for _, key := range c.SlideTypes() {
		if !slices.Contains(c.snapshot.SlideTypes[key], variantID) {
			continue
		}
		layout, ok := catalogKeyLayout(key)
		if !ok {
			continue
		}
		if found != "" && found != layout {
			logger.Debug("variant catalog: %s is listed under both layouts", variantID)
			return "", false
		}
		found = layout
	}
	return found, found != ""
}

// Ensure CatalogService implements the interface.
var _ driving.CatalogBrowser = (*CatalogService)(nil)

// CatalogService loads the catalog outside a routing run, for inspection.
type CatalogService struct {
	source driven.VariantCatalogSource
	cache  driven.CatalogCache
}

// NewCatalogService creates a catalog service. Either argument may be nil.
func NewCatalogService(source driven.VariantCatalogSource, cache driven.CatalogCache) *CatalogService {
	return &CatalogService{source: source, cache: cache}
}

// Catalog loads the catalog the same way a routing session does.
func (s *CatalogService) Catalog(ctx context.Context) (*domain.CatalogSnapshot, string, error) {
	catalog := LoadVariantCatalog(ctx, s.source, s.cache)
	if !catalog.Available() {
		return nil, CatalogNone, domain.ErrCatalogUnavailable
	}
	return catalog.Snapshot(), catalog.Source(), nil
}
