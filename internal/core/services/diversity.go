package services

import (
	"fmt"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/logger"
)

// DiversityTracker detects runs of repeated classifications and variants
// across a deck and suggests replacements. One tracker serves one session
// and is not safe for concurrent use.
type DiversityTracker struct {
	maxVariantRun        int
	maxClassificationRun int
	history              []domain.DiversityEntry
}

// NewDiversityTracker creates a tracker. Thresholds below 1 use the defaults.
func NewDiversityTracker(settings domain.DiversitySettings) *DiversityTracker {
	t := &DiversityTracker{
		maxVariantRun:        settings.MaxVariantRun,
		maxClassificationRun: settings.MaxClassificationRun,
	}
	if t.maxVariantRun < 1 {
		t.maxVariantRun = domain.DefaultMaxVariantRun
	}
	if t.maxClassificationRun < 1 {
		t.maxClassificationRun = domain.DefaultMaxClassificationRun
	}
	return t
}

// ShouldOverride decides whether appending the candidate would extend a run
// past its threshold. Slides in a semantic group and non-content archetypes
// are never overridden.
//
// A classification run suggests another archetype. It depends only on the
// classification history, so it is the same for any variant draw. A variant
// run alone keeps the classification and names the variant to avoid.
func (t *DiversityTracker) ShouldOverride(class domain.Classification, variantID, group string) domain.DiversityDecision {
	if group != "" || !class.IsContent() {
		return domain.DiversityDecision{}
	}

	if run := t.trailingRun(func(e domain.DiversityEntry) bool {
		return e.Classification == class
	}); run >= t.maxClassificationRun {
		reason := fmt.Sprintf("classification %s already used %d times in a row", class, run)
		suggested := t.leastRecentlyUsed(class)
		logger.Debug("diversity override: %s -> %s (%s)", class, suggested, reason)
		return domain.DiversityDecision{Override: true, Suggested: suggested, Reason: reason}
	}

	if run := t.trailingRun(func(e domain.DiversityEntry) bool {
		return variantID != "" && e.VariantID == variantID
	}); run >= t.maxVariantRun {
		reason := fmt.Sprintf("variant %s already used %d times in a row", variantID, run)
		logger.Debug("diversity override: %s keeps its classification, avoiding %s (%s)", class, variantID, reason)
		return domain.DiversityDecision{Override: true, Suggested: class, AvoidVariant: variantID, Reason: reason}
	}
	return domain.DiversityDecision{}
}

// AddSlide appends a finalised slide to the history.
func (t *DiversityTracker) AddSlide(class domain.Classification, variantID, group string, position int) {
	t.history = append(t.history, domain.DiversityEntry{
		Classification: class,
		VariantID:      variantID,
		SemanticGroup:  group,
		Position:       position,
	})
}

// History returns a copy of the recorded entries in insertion order.
func (t *DiversityTracker) History() []domain.DiversityEntry {
	out := make([]domain.DiversityEntry, len(t.history))
	copy(out, t.history)
	return out
}

// Reset clears the history.
func (t *DiversityTracker) Reset() {
	t.history = nil
}

// Metrics summarises the recorded history.
//
// The score is 100 * (p - 1 + (c + v) / 2p) / n for n slides with p distinct
// (classification, variant) pairs, c unique classifications and v unique
// variants. Since c and v never exceed p the fractional term lies in (0, 1],
// so the score stays within 0..100 and strictly increases with p.
func (t *DiversityTracker) Metrics() domain.DiversityMetrics {
	m := domain.DiversityMetrics{
		TotalSlides:                len(t.history),
		ClassificationDistribution: make(map[domain.Classification]int),
		VariantDistribution:        make(map[string]int),
		SemanticGroups:             []string{},
	}
	if len(t.history) == 0 {
		return m
	}

	type pair struct {
		class   domain.Classification
		variant string
	}
	pairs := make(map[pair]struct{})
	groups := make(map[string]struct{})
	for _, e := range t.history {
		m.ClassificationDistribution[e.Classification]++
		if e.VariantID != "" {
			m.VariantDistribution[e.VariantID]++
		}
		pairs[pair{e.Classification, e.VariantID}] = struct{}{}
		if e.SemanticGroup != "" {
			if _, seen := groups[e.SemanticGroup]; !seen {
				groups[e.SemanticGroup] = struct{}{}
				m.SemanticGroups = append(m.SemanticGroups, e.SemanticGroup)
			}
		}
	}

	m.UniqueClassifications = len(m.ClassificationDistribution)
	m.UniqueVariants = len(m.VariantDistribution)
	m.UniquePairs = len(pairs)
	m.Score = DiversityScore(m.TotalSlides, m.UniquePairs, m.UniqueClassifications, m.UniqueVariants)
	return m
}

// DiversityScore computes the 0..100 diversity score. It returns 0 for an
// empty deck.
func DiversityScore(total, pairs, classes, variants int) float64 {
	if total <= 0 || pairs <= 0 {
		return 0
	}
	spread := float64(classes+variants) / float64(2*pairs)
	return 100 * (float64(pairs-1) + spread) / float64(total)
}

// trailingRun counts consecutive matching entries at the end of the history.
func (t *DiversityTracker) trailingRun(match func(domain.DiversityEntry) bool) int {
	run := 0
	for i := len(t.history) - 1; i >= 0; i-- {
		if !match(t.history[i]) {
			break
		}
		run++
	}
	return run
}

// leastRecentlyUsed returns the content archetype, other than exclude, whose
// last use is furthest back. Unused archetypes come first; ties go to the
// higher-priority rule.
func (t *DiversityTracker) leastRecentlyUsed(exclude domain.Classification) domain.Classification {
	lastUse := make(map[domain.Classification]int)
	for i, e := range t.history {
		lastUse[e.Classification] = i
	}

	best := domain.ClassSingleColumn
	bestIdx := len(t.history)
	for _, c := range domain.ContentClassifications() {
		if c == exclude {
			continue
		}
		idx, ok := lastUse[c]
		if !ok {
			idx = -1
		}
		if idx < bestIdx {
			best, bestIdx = c, idx
		}
	}
	return best
}
