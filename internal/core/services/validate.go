package services

import (
	"strings"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/logger"
)

// ValidateStrawman checks every routing precondition and collects all
// violations. It returns a *domain.ValidationError or nil.
func ValidateStrawman(strawman *domain.Strawman) error {
	violations := titleViolations(strawman)
	for i := range strawman.Slides {
		slide := &strawman.Slides[i]
		if domain.DispatchFor(slide.Classification).RequiresVariant() && slide.VariantID == "" {
			violations = append(violations, domain.Violation{
				Position: slide.Position,
				SlideID:  slide.ID,
				Field:    "variant_id",
				Message:  "missing variant for " + string(slide.Classification) + " slide",
			})
		}
	}
	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}

func titleViolations(strawman *domain.Strawman) []domain.Violation {
	var violations []domain.Violation
	for i := range strawman.Slides {
		slide := &strawman.Slides[i]
		if strings.TrimSpace(slide.GeneratedTitle) == "" {
			violations = append(violations, domain.Violation{
				Position: slide.Position,
				SlideID:  slide.ID,
				Field:    "generated_title",
				Message:  "missing generated title",
			})
		}
	}
	return violations
}

// needsPreparation reports whether any slide lacks a classification or a
// required variant, or carries a variant the static table places on the
// other layout. Layouts must already be assigned.
func needsPreparation(strawman *domain.Strawman) bool {
	for i := range strawman.Slides {
		slide := &strawman.Slides[i]
		if slide.Classification == "" {
			return true
		}
		if domain.DispatchFor(slide.Classification).RequiresVariant() && slide.VariantID == "" {
			return true
		}
		if layout, known := staticVariantLayout(slide.VariantID); known && layout != slide.Layout {
			logger.Debug("slide %s: variant %s belongs to the %s layout", slide.Label(), slide.VariantID, layout)
			return true
		}
	}
	return false
}

// DeckDiversity computes diversity metrics for a finalised strawman.
func DeckDiversity(strawman *domain.Strawman) domain.DiversityMetrics {
	tracker := NewDiversityTracker(domain.DiversitySettings{})
	for i := range strawman.Slides {
		slide := &strawman.Slides[i]
		tracker.AddSlide(slide.Classification, slide.VariantID, SemanticGroup(slide.Narrative), slide.Position)
	}
	return tracker.Metrics()
}
