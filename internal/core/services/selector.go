package services

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/logger"
)

// Generic variants used when the static table has no exact entry.
const (
	fallbackHeroVariant    = "hero_centered"
	fallbackContentVariant = "single_column_standard"
)

type staticKey struct {
	class  domain.Classification
	layout domain.Layout
}

// staticVariants is the catalog-less fallback table. Every variant listed
// under a layout belongs to that layout.
var staticVariants = map[staticKey]string{
	{domain.ClassTitleSlide, domain.LayoutHero}:                    "title_centered",
	{domain.ClassSectionDivider, domain.LayoutHero}:                "section_bold",
	{domain.ClassClosingSlide, domain.LayoutHero}:                  "closing_cta",
	{domain.ClassImpactQuote, domain.LayoutContentShell}:           "impact_quote_centered",
	{domain.ClassMetricsGrid, domain.LayoutContentShell}:           "metrics_3col",
	{domain.ClassMatrix2x2, domain.LayoutContentShell}:             "matrix_2x2",
	{domain.ClassGrid3x3, domain.LayoutContentShell}:               "grid_3x3",
	{domain.ClassStyledTable, domain.LayoutContentShell}:           "table_3col",
	{domain.ClassBilateralComparison, domain.LayoutContentShell}:   "comparison_2col",
	{domain.ClassSequential3Col, domain.LayoutContentShell}:        "sequential_3col",
	{domain.ClassHybrid1x2x2, domain.LayoutContentShell}:           "hybrid_left_2x2",
	{domain.ClassAsymmetric8x4, domain.LayoutContentShell}:         "asymmetric_8_4",
	{domain.ClassSingleColumn, domain.LayoutContentShell}:          fallbackContentVariant,
	{domain.ClassPyramid, domain.LayoutContentShell}:               "pyramid_standard",
	{domain.ClassAnalytics, domain.LayoutContentShell}:             "chart_standard",
}

// StaticVariant returns the fallback variant for a (classification, layout)
// pair. Classifications without an exact entry get the layout's generic variant.
func StaticVariant(class domain.Classification, layout domain.Layout) (string, error) {
	if !layout.IsValid() {
		return "", fmt.Errorf("%w: layout %q", domain.ErrInvalidInput, layout)
	}
	if v, ok := staticVariants[staticKey{class, layout}]; ok {
		return v, nil
	}
	if layout == domain.LayoutHero {
		return fallbackHeroVariant, nil
	}
	return fallbackContentVariant, nil
}

func staticVariantLayout(variantID string) (domain.Layout, bool) {
	switch variantID {
	case fallbackHeroVariant:
		return domain.LayoutHero, true
	case fallbackContentVariant:
		return domain.LayoutContentShell, true
	}
	for k, v := range staticVariants {
		if v == variantID {
			return k.layout, true
		}
	}
	return "", false
}

// selectionKey returns the catalog key consulted for a (classification, layout)
// pair. Hero labels on a content shell borrow single-column variants and
// content labels on a hero layout borrow section-divider variants, so the
// chosen variant always belongs to the slide's layout.
func selectionKey(class domain.Classification, layout domain.Layout) (string, error) {
	if !class.IsHero() && !class.IsContent() {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownClassification, class)
	}
	switch layout {
	case domain.LayoutHero:
		if class.IsHero() {
			return catalogKeys[class], nil
		}
		return catalogKeys[domain.ClassSectionDivider], nil
	case domain.LayoutContentShell:
		if class.IsContent() {
			return catalogKeys[class], nil
		}
		return catalogKeys[domain.ClassSingleColumn], nil
	default:
		return "", fmt.Errorf("%w: layout %q", domain.ErrInvalidInput, layout)
	}
}

// genericKey is the catalog key of the layout's catch-all slide type.
func genericKey(layout domain.Layout) string {
	if layout == domain.LayoutHero {
		return catalogKeys[domain.ClassSectionDivider]
	}
	return catalogKeys[domain.ClassSingleColumn]
}

// VariantSelector picks visual variants for slides. One selector serves one
// session and is not safe for concurrent use.
type VariantSelector struct {
	catalog *VariantCatalog
	rng     *rand.Rand
}

// NewVariantSelector creates a selector over catalog. A zero seed uses a
// time-based seed; any other seed makes selection reproducible.
func NewVariantSelector(catalog *VariantCatalog, seed uint64) *VariantSelector {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &VariantSelector{
		catalog: catalog,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Catalog returns the selector's catalog.
func (s *VariantSelector) Catalog() *VariantCatalog {
	return s.catalog
}

// SelectVariant picks a catalog variant uniformly at random.
func (s *VariantSelector) SelectVariant(class domain.Classification, layout domain.Layout) (string, error) {
	key, err := selectionKey(class, layout)
	if err != nil {
		return "", err
	}
	variants, err := s.catalog.VariantsFor(key)
	if err != nil {
		return "", err
	}
	return variants[s.rng.IntN(len(variants))], nil
}

// SelectVariantExcept picks a catalog variant for the pair uniformly at
// random among those other than exclude. It reports false when the catalog
// offers no alternative.
func (s *VariantSelector) SelectVariantExcept(class domain.Classification, layout domain.Layout, exclude string) (string, bool) {
	key, err := selectionKey(class, layout)
	if err != nil {
		return "", false
	}
	variants, err := s.catalog.VariantsFor(key)
	if err != nil {
		return "", false
	}
	variants = slices.DeleteFunc(variants, func(v string) bool { return v == exclude })
	if len(variants) == 0 {
		return "", false
	}
	return variants[s.rng.IntN(len(variants))], true
}

// SelectVariantWithFallback picks a variant, falling back in order to the
// caller default (when it belongs to the layout), the first variant of the
// layout's generic slide type, and the static table.
func (s *VariantSelector) SelectVariantWithFallback(
	class domain.Classification,
	layout domain.Layout,
	defaultVariant string,
) (string, domain.VariantSource, error) {
	if !layout.IsValid() {
		return "", "", fmt.Errorf("%w: layout %q", domain.ErrInvalidInput, layout)
	}

	v, err := s.SelectVariant(class, layout)
	if err == nil {
		return v, domain.VariantFromCatalog, nil
	}
	logger.Debug("select variant %s/%s: %v", class, layout, err)

	if defaultVariant != "" {
		if s.fits(defaultVariant, layout) {
			return defaultVariant, domain.VariantFromDefault, nil
		}
		logger.Debug("select variant %s/%s: default %q does not fit layout", class, layout, defaultVariant)
	}

	if variants, err := s.catalog.VariantsFor(genericKey(layout)); err == nil {
		return variants[0], domain.VariantFromFirst, nil
	}

	v, err = StaticVariant(class, layout)
	if err != nil {
		return "", "", err
	}
	logger.Debug("select variant %s/%s: static fallback %s", class, layout, v)
	return v, domain.VariantFromStatic, nil
}

// fits reports whether a known variant belongs to layout. Unknown variants
// never fit.
func (s *VariantSelector) fits(variantID string, layout domain.Layout) bool {
	if l, ok := s.catalog.variantLayout(variantID); ok {
		return l == layout
	}
	if l, ok := staticVariantLayout(variantID); ok {
		return l == layout
	}
	return false
}

// VariantLayout reports which layout a variant belongs to, if known.
func (s *VariantSelector) VariantLayout(variantID string) (domain.Layout, bool) {
	if l, ok := s.catalog.variantLayout(variantID); ok {
		return l, true
	}
	return staticVariantLayout(variantID)
}
