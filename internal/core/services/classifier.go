package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/logger"
)

// maxSectionKeyPoints is the most key points a section divider may carry.
const maxSectionKeyPoints = 3

// groupMarker matches "[GROUP: name]" in a slide narrative.
var groupMarker = regexp.MustCompile(`\[GROUP:\s*([^\]]+)\]`)

// keywordRule maps a keyword set to a content classification.
type keywordRule struct {
	class    domain.Classification
	keywords []string
	pattern  *regexp.Regexp
}

// contentRules are evaluated in order; the first match wins.
var contentRules = compileRules([]keywordRule{
	{class: domain.ClassImpactQuote, keywords: []string{
		"quote", "quotes", "testimonial", "testimonials", "in the words of", "as they say",
	}},
	{class: domain.ClassMetricsGrid, keywords: []string{
		"metric", "metrics", "kpi", "kpis", "percentage", "%", "growth rate", "revenue",
		"statistics", "by the numbers", "key figures",
	}},
	{class: domain.ClassMatrix2x2, keywords: []string{
		"2x2", "matrix", "quadrant", "quadrants", "swot",
	}},
	{class: domain.ClassGrid3x3, keywords: []string{
		"3x3", "grid", "nine",
	}},
	{class: domain.ClassStyledTable, keywords: []string{
		"table", "tabular", "rows and columns", "spreadsheet",
	}},
	{class: domain.ClassBilateralComparison, keywords: []string{
		"vs", "vs.", "versus", "compare", "comparison", "before and after", "pros and cons", "side by side",
	}},
	{class: domain.ClassSequential3Col, keywords: []string{
		"step", "steps", "process", "phase", "phases", "stage", "stages", "workflow", "three-step",
	}},
	{class: domain.ClassHybrid1x2x2, keywords: []string{
		"overview", "at a glance", "key areas",
	}},
	{class: domain.ClassAsymmetric8x4, keywords: []string{
		"sidebar", "main point", "supporting", "callout", "deep dive",
	}},
})

// sectionPattern marks a mid-deck slide as a section divider.
var sectionPattern = keywordPattern([]string{
	"section", "agenda", "moving to", "next:", "transition", "chapter", "let's turn to",
})

func compileRules(rules []keywordRule) []keywordRule {
	for i := range rules {
		rules[i].pattern = keywordPattern(rules[i].keywords)
	}
	return rules
}

// keywordPattern builds a case-insensitive alternation. Word boundaries are
// only anchored on keyword edges that are word characters, so "%" and
// "next:" still match.
func keywordPattern(keywords []string) *regexp.Regexp {
	alts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		p := regexp.QuoteMeta(kw)
		if isWordByte(kw[0]) {
			p = `\b` + p
		}
		if isWordByte(kw[len(kw)-1]) {
			p += `\b`
		}
		alts = append(alts, p)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// SlideClassifier assigns taxonomy labels. It holds no state and is safe
// for concurrent use.
type SlideClassifier struct{}

// NewSlideClassifier creates a new classifier.
func NewSlideClassifier() *SlideClassifier {
	return &SlideClassifier{}
}

// Classify returns the classification for a slide at the given position.
func (c *SlideClassifier) Classify(slide *domain.Slide, position, total int) domain.Classification {
	return c.Match(slide, position, total).Classification
}

// Match classifies a slide and reports the semantic group and matching rule.
func (c *SlideClassifier) Match(slide *domain.Slide, position, total int) domain.ClassificationMatch {
	match := c.match(slide, position, total)
	match.SemanticGroup = SemanticGroup(slide.Narrative)
	logger.Debug("classify %s: %s (rule=%s group=%q)", slide.Label(), match.Classification, match.Rule, match.SemanticGroup)
	return match
}

func (c *SlideClassifier) match(slide *domain.Slide, position, total int) domain.ClassificationMatch {
	switch {
	case position == 1:
		return domain.ClassificationMatch{Classification: domain.ClassTitleSlide, Rule: "position"}
	case position == total:
		return domain.ClassificationMatch{Classification: domain.ClassClosingSlide, Rule: "position"}
	}

	if len(slide.KeyPoints) <= maxSectionKeyPoints &&
		sectionPattern.MatchString(slide.Title+"\n"+stripGroupMarker(slide.Narrative)) {
		return domain.ClassificationMatch{Classification: domain.ClassSectionDivider, Rule: "section_phrase"}
	}

	if strings.TrimSpace(slide.Hints.ChartType) != "" {
		return domain.ClassificationMatch{Classification: domain.ClassAnalytics, Rule: "chart_type"}
	}
	if strings.EqualFold(strings.TrimSpace(slide.Hints.DiagramType), string(domain.ClassPyramid)) {
		return domain.ClassificationMatch{Classification: domain.ClassPyramid, Rule: "diagram_type"}
	}

	text := classificationText(slide)
	for _, rule := range contentRules {
		if rule.pattern.MatchString(text) {
			return domain.ClassificationMatch{Classification: rule.class, Rule: string(rule.class)}
		}
	}
	return domain.ClassificationMatch{Classification: domain.ClassSingleColumn, Rule: "default"}
}

// classificationText joins every text field the keyword rules look at.
func classificationText(slide *domain.Slide) string {
	parts := []string{slide.Title, stripGroupMarker(slide.Narrative)}
	parts = append(parts, slide.KeyPoints...)
	if hints := slide.Hints.Text(); hints != "" {
		parts = append(parts, hints)
	}
	return strings.Join(parts, "\n")
}

// SemanticGroup extracts the group name from a [GROUP: name] marker.
// Returns an empty string when there is no marker.
func SemanticGroup(narrative string) string {
	m := groupMarker.FindStringSubmatch(narrative)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func stripGroupMarker(narrative string) string {
	return strings.TrimSpace(groupMarker.ReplaceAllString(narrative, ""))
}
