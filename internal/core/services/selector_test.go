package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

func variantClasses() []domain.Classification {
	return append(domain.HeroClassifications(), domain.ContentClassifications()...)
}

func testLayouts() []domain.Layout {
	return []domain.Layout{domain.LayoutHero, domain.LayoutContentShell}
}

func TestStaticVariant_MatchesLayout(t *testing.T) {
	for _, class := range domain.AllClassifications() {
		for _, layout := range testLayouts() {
			v, err := StaticVariant(class, layout)
			require.NoError(t, err)
			got, ok := staticVariantLayout(v)
			require.True(t, ok, "unknown static variant %s", v)
			assert.Equal(t, layout, got, "%s on %s got %s", class, layout, v)
		}
	}
}

func TestStaticVariant_InvalidLayout(t *testing.T) {
	_, err := StaticVariant(domain.ClassTitleSlide, "sidebar")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVariantSelector_SelectVariant(t *testing.T) {
	s := NewVariantSelector(NewVariantCatalog(testCatalog(), CatalogFromRemote), 1)

	v, err := s.SelectVariant(domain.ClassMetricsGrid, domain.LayoutContentShell)
	require.NoError(t, err)
	assert.Contains(t, []string{"metrics_a", "metrics_b"}, v)

	_, err = s.SelectVariant(domain.ClassPyramid, domain.LayoutContentShell)
	assert.ErrorIs(t, err, domain.ErrUnknownClassification)

	_, err = NewVariantSelector(NewVariantCatalog(nil, CatalogNone), 1).
		SelectVariant(domain.ClassMetricsGrid, domain.LayoutContentShell)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestVariantSelector_LayoutInvariant(t *testing.T) {
	catalogs := map[string]*VariantCatalog{
		"catalog":    NewVariantCatalog(testCatalog(), CatalogFromRemote),
		"no catalog": NewVariantCatalog(nil, CatalogNone),
	}

	for name, catalog := range catalogs {
		t.Run(name, func(t *testing.T) {
			s := NewVariantSelector(catalog, 3)
			for _, class := range variantClasses() {
				for _, layout := range testLayouts() {
					for i := 0; i < 5; i++ {
						v, _, err := s.SelectVariantWithFallback(class, layout, "")
						require.NoError(t, err)
						got, ok := s.VariantLayout(v)
						require.True(t, ok, "unknown variant %s", v)
						assert.Equal(t, layout, got, "%s on %s got %s", class, layout, v)
					}
				}
			}
		})
	}
}

func TestVariantSelector_CrossLayoutKeys(t *testing.T) {
	s := NewVariantSelector(NewVariantCatalog(testCatalog(), CatalogFromRemote), 5)

	v, src, err := s.SelectVariantWithFallback(domain.ClassSectionDivider, domain.LayoutContentShell, "")
	require.NoError(t, err)
	assert.Equal(t, domain.VariantFromCatalog, src)
	assert.Contains(t, []string{"single_column_a", "single_column_b"}, v)

	v, _, err = s.SelectVariantWithFallback(domain.ClassMetricsGrid, domain.LayoutHero, "")
	require.NoError(t, err)
	assert.Contains(t, []string{"hero_section_a", "hero_section_b"}, v)
}

func TestVariantSelector_FallbackOrder(t *testing.T) {
	partial := NewVariantCatalog(&domain.CatalogSnapshot{
		SlideTypes: map[string][]string{
			"single_column": {"plain_a", "plain_b"},
			"hero_title":    {"cover"},
		},
	}, CatalogFromRemote)
	s := NewVariantSelector(partial, 9)

	t.Run("default that fits", func(t *testing.T) {
		v, src, err := s.SelectVariantWithFallback(domain.ClassMetricsGrid, domain.LayoutContentShell, "metrics_3col")
		require.NoError(t, err)
		assert.Equal(t, "metrics_3col", v)
		assert.Equal(t, domain.VariantFromDefault, src)
	})

	t.Run("default on the wrong layout", func(t *testing.T) {
		v, src, err := s.SelectVariantWithFallback(domain.ClassMetricsGrid, domain.LayoutContentShell, "cover")
		require.NoError(t, err)
		assert.Equal(t, "plain_a", v)
		assert.Equal(t, domain.VariantFromFirst, src)
	})

	t.Run("unknown default", func(t *testing.T) {
		v, src, err := s.SelectVariantWithFallback(domain.ClassMetricsGrid, domain.LayoutContentShell, "mystery")
		require.NoError(t, err)
		assert.Equal(t, "plain_a", v)
		assert.Equal(t, domain.VariantFromFirst, src)
	})

	t.Run("static", func(t *testing.T) {
		v, src, err := s.SelectVariantWithFallback(domain.ClassClosingSlide, domain.LayoutHero, "")
		require.NoError(t, err)
		assert.Equal(t, "closing_cta", v)
		assert.Equal(t, domain.VariantFromStatic, src)
	})

	t.Run("invalid layout", func(t *testing.T) {
		_, _, err := s.SelectVariantWithFallback(domain.ClassClosingSlide, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestVariantSelector_SeedIsDeterministic(t *testing.T) {
	catalog := NewVariantCatalog(testCatalog(), CatalogFromRemote)
	a := NewVariantSelector(catalog, 42)
	b := NewVariantSelector(catalog, 42)

	for i := 0; i < 50; i++ {
		class := variantClasses()[i%len(variantClasses())]
		layout := testLayouts()[i%2]
		va, err := a.SelectVariant(class, layout)
		require.NoError(t, err)
		vb, err := b.SelectVariant(class, layout)
		require.NoError(t, err)
		assert.Equal(t, va, vb)
	}
}

func TestVariantSelector_Uniform(t *testing.T) {
	catalog := NewVariantCatalog(&domain.CatalogSnapshot{
		SlideTypes: map[string][]string{"grid": {"g1", "g2", "g3"}},
	}, CatalogFromRemote)
	s := NewVariantSelector(catalog, 1)

	counts := make(map[string]int)
	const draws = 3000
	for i := 0; i < draws; i++ {
		v, err := s.SelectVariant(domain.ClassGrid3x3, domain.LayoutContentShell)
		require.NoError(t, err)
		counts[v]++
	}

	require.Len(t, counts, 3)
	for v, n := range counts {
		assert.InDelta(t, draws/3, n, 200, fmt.Sprintf("variant %s drawn %d times", v, n))
	}
}
