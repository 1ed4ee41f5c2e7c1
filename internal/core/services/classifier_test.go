package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

func TestSlideClassifier_Position(t *testing.T) {
	c := NewSlideClassifier()
	slide := &domain.Slide{Title: "Revenue metrics", Narrative: "KPIs"}

	assert.Equal(t, domain.ClassTitleSlide, c.Classify(slide, 1, 8))
	assert.Equal(t, domain.ClassClosingSlide, c.Classify(slide, 8, 8))
	assert.Equal(t, domain.ClassMetricsGrid, c.Classify(slide, 4, 8))
}

func TestSlideClassifier_SingleSlideDeck(t *testing.T) {
	c := NewSlideClassifier()

	assert.Equal(t, domain.ClassTitleSlide, c.Classify(&domain.Slide{Title: "Only"}, 1, 1))
}

func TestSlideClassifier_Rules(t *testing.T) {
	tests := []struct {
		name  string
		slide domain.Slide
		want  domain.Classification
		rule  string
	}{
		{
			name:  "section phrase",
			slide: domain.Slide{Title: "Section 2: Market", Narrative: "Moving on"},
			want:  domain.ClassSectionDivider,
			rule:  "section_phrase",
		},
		{
			name:  "chart type",
			slide: domain.Slide{Title: "Growth", Hints: domain.StructuralHints{ChartType: "pie"}},
			want:  domain.ClassAnalytics,
			rule:  "chart_type",
		},
		{
			name:  "pyramid diagram",
			slide: domain.Slide{Title: "Needs", Hints: domain.StructuralHints{DiagramType: "Pyramid"}},
			want:  domain.ClassPyramid,
			rule:  "diagram_type",
		},
		{
			name:  "testimonial",
			slide: domain.Slide{Title: "Customer testimonials", Narrative: "What users tell us"},
			want:  domain.ClassImpactQuote,
		},
		{
			name:  "metrics",
			slide: domain.Slide{Title: "Q3 results", Narrative: "Revenue grew 40%"},
			want:  domain.ClassMetricsGrid,
		},
		{
			name:  "swot",
			slide: domain.Slide{Title: "SWOT analysis", Narrative: "Where we stand"},
			want:  domain.ClassMatrix2x2,
		},
		{
			name:  "table",
			slide: domain.Slide{Title: "Pricing table", Narrative: "Plans by tier"},
			want:  domain.ClassStyledTable,
		},
		{
			name:  "versus",
			slide: domain.Slide{Title: "Us versus them", Narrative: "Where we win"},
			want:  domain.ClassBilateralComparison,
		},
		{
			name:  "process",
			slide: domain.Slide{Title: "Onboarding", Narrative: "A simple process for new teams"},
			want:  domain.ClassSequential3Col,
		},
		{
			name:  "overview",
			slide: domain.Slide{Title: "Platform overview", Narrative: "What ships today"},
			want:  domain.ClassHybrid1x2x2,
		},
		{
			name:  "deep dive",
			slide: domain.Slide{Title: "Architecture deep dive", Narrative: "How it fits together"},
			want:  domain.ClassAsymmetric8x4,
		},
		{
			name:  "key points are matched",
			slide: domain.Slide{Title: "Why now", KeyPoints: []string{"a", "b", "c", "d", "pros and cons"}},
			want:  domain.ClassBilateralComparison,
		},
		{
			name:  "default",
			slide: domain.Slide{Title: "Our mission", Narrative: "We build tools for teams"},
			want:  domain.ClassSingleColumn,
			rule:  "default",
		},
	}

	c := NewSlideClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := c.Match(&tt.slide, 3, 10)
			assert.Equal(t, tt.want, match.Classification)
			if tt.rule != "" {
				assert.Equal(t, tt.rule, match.Rule)
			}
		})
	}
}

func TestSlideClassifier_SectionNeedsFewKeyPoints(t *testing.T) {
	c := NewSlideClassifier()
	slide := &domain.Slide{
		Title:     "Agenda",
		KeyPoints: []string{"Intro", "Market", "Product", "Plan"},
	}

	assert.Equal(t, domain.ClassSingleColumn, c.Classify(slide, 2, 10))
}

func TestSlideClassifier_WordBoundaries(t *testing.T) {
	c := NewSlideClassifier()

	// "grid" must not match inside "gridlock", nor "step" inside "steppe".
	slide := &domain.Slide{Title: "Gridlock on the steppe", Narrative: "A story"}
	assert.Equal(t, domain.ClassSingleColumn, c.Classify(slide, 2, 5))
}

func TestSlideClassifier_GroupMarkerIgnoredForRules(t *testing.T) {
	c := NewSlideClassifier()
	slide := &domain.Slide{Title: "Feature", Narrative: "[GROUP: section-two] Fast sync"}

	match := c.Match(slide, 2, 5)

	assert.Equal(t, domain.ClassSingleColumn, match.Classification)
	assert.Equal(t, "section-two", match.SemanticGroup)
}

func TestSemanticGroup(t *testing.T) {
	assert.Equal(t, "features", SemanticGroup("[GROUP: features] one"))
	assert.Equal(t, "team bios", SemanticGroup("intro [GROUP:  team bios ]"))
	assert.Empty(t, SemanticGroup("no marker"))
}
