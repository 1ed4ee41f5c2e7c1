package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifications_Counts(t *testing.T) {
	assert.Len(t, HeroClassifications(), 3)
	assert.Len(t, ContentClassifications(), 10)
	assert.Len(t, AllClassifications(), 15)
	assert.Equal(t, ClassSingleColumn, ContentClassifications()[9])
	assert.Equal(t, ClassImpactQuote, ContentClassifications()[0])
}

func TestClassification_Predicates(t *testing.T) {
	tests := []struct {
		class   Classification
		hero    bool
		content bool
		valid   bool
	}{
		{ClassTitleSlide, true, false, true},
		{ClassClosingSlide, true, false, true},
		{ClassMetricsGrid, false, true, true},
		{ClassSingleColumn, false, true, true},
		{ClassPyramid, false, false, true},
		{ClassAnalytics, false, false, true},
		{Classification("timeline"), false, false, false},
		{Classification(""), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			assert.Equal(t, tt.hero, tt.class.IsHero())
			assert.Equal(t, tt.content, tt.class.IsContent())
			assert.Equal(t, tt.valid, tt.class.IsValid())
		})
	}
}

func TestDispatchFor(t *testing.T) {
	for _, c := range HeroClassifications() {
		assert.Equal(t, DispatchHero, DispatchFor(c))
	}
	for _, c := range ContentClassifications() {
		assert.Equal(t, DispatchContent, DispatchFor(c))
	}
	assert.Equal(t, DispatchPyramid, DispatchFor(ClassPyramid))
	assert.Equal(t, DispatchAnalytics, DispatchFor(ClassAnalytics))
	assert.Equal(t, DispatchContent, DispatchFor(Classification("unmapped")))
}

func TestDispatchKind_RequiresVariant(t *testing.T) {
	assert.True(t, DispatchContent.RequiresVariant())
	assert.False(t, DispatchHero.RequiresVariant())
	assert.False(t, DispatchPyramid.RequiresVariant())
	assert.False(t, DispatchAnalytics.RequiresVariant())
}
