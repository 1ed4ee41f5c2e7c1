package domain

// Classification is the taxonomy label assigned to a slide.
type Classification string

// Hero classifications, assigned by position.
const (
	ClassTitleSlide     Classification = "title_slide"
	ClassSectionDivider Classification = "section_divider"
	ClassClosingSlide   Classification = "closing_slide"
)

// Content classifications, assigned by keyword rules.
const (
	ClassImpactQuote         Classification = "impact_quote"
	ClassMetricsGrid         Classification = "metrics_grid"
	ClassMatrix2x2           Classification = "matrix_2x2"
	ClassGrid3x3             Classification = "grid_3x3"
	ClassStyledTable         Classification = "styled_table"
	ClassBilateralComparison Classification = "bilateral_comparison"
	ClassSequential3Col      Classification = "sequential_3col"
	ClassHybrid1x2x2         Classification = "hybrid_1_2x2"
	ClassAsymmetric8x4       Classification = "asymmetric_8_4"
	ClassSingleColumn        Classification = "single_column"
)

// Specialised classifications, assigned from explicit structural hints.
// They route to dedicated services instead of the content endpoint.
const (
	ClassPyramid   Classification = "pyramid"
	ClassAnalytics Classification = "analytics"
)

// HeroClassifications returns the hero labels in position order.
func HeroClassifications() []Classification {
	return []Classification{ClassTitleSlide, ClassSectionDivider, ClassClosingSlide}
}

// ContentClassifications returns the content labels in rule priority order.
// The default, single_column, is last.
func ContentClassifications() []Classification {
	return []Classification{
		ClassImpactQuote,
		ClassMetricsGrid,
		ClassMatrix2x2,
		ClassGrid3x3,
		ClassStyledTable,
		ClassBilateralComparison,
		ClassSequential3Col,
		ClassHybrid1x2x2,
		ClassAsymmetric8x4,
		ClassSingleColumn,
	}
}

// AllClassifications returns the 13 taxonomy labels followed by the
// specialised labels.
func AllClassifications() []Classification {
	all := append(HeroClassifications(), ContentClassifications()...)
	return append(all, ClassPyramid, ClassAnalytics)
}

// IsHero returns true for title, section divider and closing slides.
func (c Classification) IsHero() bool {
	return c == ClassTitleSlide || c == ClassSectionDivider || c == ClassClosingSlide
}

// IsContent returns true for the content archetypes (including single_column).
func (c Classification) IsContent() bool {
	for _, cc := range ContentClassifications() {
		if c == cc {
			return true
		}
	}
	return false
}

// IsValid returns true if the classification is recognised.
func (c Classification) IsValid() bool {
	return c.IsHero() || c.IsContent() || c == ClassPyramid || c == ClassAnalytics
}

// String returns the string representation.
func (c Classification) String() string {
	return string(c)
}

// DispatchKind is the closed set of routing branches.
type DispatchKind string

// Dispatch branches, in the order the router checks them.
const (
	DispatchAnalytics DispatchKind = "analytics"
	DispatchPyramid   DispatchKind = "pyramid"
	DispatchHero      DispatchKind = "hero"
	DispatchContent   DispatchKind = "content"
)

// String returns the string representation.
func (k DispatchKind) String() string {
	return string(k)
}

// RequiresVariant returns true if slides on this branch must carry a variant id.
func (k DispatchKind) RequiresVariant() bool {
	return k == DispatchContent
}

// dispatchTable maps every label to its routing branch.
var dispatchTable = map[Classification]DispatchKind{
	ClassTitleSlide:          DispatchHero,
	ClassSectionDivider:      DispatchHero,
	ClassClosingSlide:        DispatchHero,
	ClassImpactQuote:         DispatchContent,
	ClassMetricsGrid:         DispatchContent,
	ClassMatrix2x2:           DispatchContent,
	ClassGrid3x3:             DispatchContent,
	ClassStyledTable:         DispatchContent,
	ClassBilateralComparison: DispatchContent,
	ClassSequential3Col:      DispatchContent,
	ClassHybrid1x2x2:         DispatchContent,
	ClassAsymmetric8x4:       DispatchContent,
	ClassSingleColumn:        DispatchContent,
	ClassPyramid:             DispatchPyramid,
	ClassAnalytics:           DispatchAnalytics,
}

// DispatchFor returns the routing branch for a classification.
// Unknown labels route to the generic content branch.
func DispatchFor(c Classification) DispatchKind {
	if kind, ok := dispatchTable[c]; ok {
		return kind
	}
	return DispatchContent
}
