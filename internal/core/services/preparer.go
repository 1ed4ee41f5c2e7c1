package services

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/logger"
)

// PrepareOptions controls a preparation pass.
type PrepareOptions struct {
	// DeriveTitles fills empty generated titles from slide titles.
	DeriveTitles bool

	// Reclassify ignores existing classifications and variants.
	Reclassify bool
}

// StrawmanPreparer assigns layouts, classifications and variants to a
// strawman in place, using one session's classifier, tracker and selector.
type StrawmanPreparer struct {
	session *RoutingSession
	opts    PrepareOptions
}

// NewStrawmanPreparer creates a preparer for a session.
func NewStrawmanPreparer(session *RoutingSession, opts PrepareOptions) *StrawmanPreparer {
	return &StrawmanPreparer{session: session, opts: opts}
}

// Prepare walks the slides in order. Layout always follows position.
// Slides that already carry a classification or variant keep it unless
// Reclassify is set. Diversity overrides only apply to labels the
// classifier chose. Prepare does no network I/O.
func (p *StrawmanPreparer) Prepare(strawman *domain.Strawman) *domain.PreparationReport {
	logger.Section("Preparing Strawman")

	s := p.session
	s.Tracker.Reset()
	total := len(strawman.Slides)
	report := &domain.PreparationReport{
		Decisions:     make([]domain.SlideDecision, 0, total),
		CatalogSource: s.Catalog.Source(),
	}

	if truncated, ok := TruncateWords(strawman.Footer, domain.MaxFooterLen); ok {
		logger.Debug("footer truncated to %q", truncated)
		strawman.Footer = truncated
	}

	for i := range strawman.Slides {
		slide := &strawman.Slides[i]
		report.Decisions = append(report.Decisions, p.prepareSlide(slide, total))
	}

	report.Diversity = s.Tracker.Metrics()
	logger.Info("prepared %d slides: %d overrides, diversity score %.1f",
		total, report.Overrides(), report.Diversity.Score)
	return report
}

func (p *StrawmanPreparer) prepareSlide(slide *domain.Slide, total int) domain.SlideDecision {
	s := p.session
	if slide.ID == "" {
		slide.ID = uuid.NewString()
	}
	slide.Layout = domain.LayoutForPosition(slide.Position, total)

	d := domain.SlideDecision{
		Position: slide.Position,
		SlideID:  slide.ID,
		Layout:   slide.Layout,
	}

	classified := slide.Classification == "" || p.opts.Reclassify
	if classified {
		match := s.Classifier.Match(slide, slide.Position, total)
		slide.Classification = match.Classification
		d.Rule = match.Rule
		d.SemanticGroup = match.SemanticGroup
	} else {
		d.Rule = "preset"
		d.SemanticGroup = SemanticGroup(slide.Narrative)
	}

	presetVariant := slide.VariantID != "" && !p.opts.Reclassify
	if presetVariant {
		if layout, known := s.Selector.VariantLayout(slide.VariantID); known && layout != slide.Layout {
			logger.Warn("slide %s: variant %s does not fit %s layout, reselecting", slide.Label(), slide.VariantID, slide.Layout)
			presetVariant = false
		}
	}
	if presetVariant {
		d.VariantSource = domain.VariantFromPreset
	} else {
		slide.VariantID, d.VariantSource = p.selectVariant(slide.Classification, slide.Layout)
	}

	if classified && !presetVariant {
		decision := s.Tracker.ShouldOverride(slide.Classification, slide.VariantID, d.SemanticGroup)
		switch {
		case !decision.Override:
		case decision.Suggested != slide.Classification:
			d.Overridden = true
			d.Original = slide.Classification
			d.OverrideReason = decision.Reason
			slide.Classification = decision.Suggested
			slide.VariantID, d.VariantSource = p.selectVariant(slide.Classification, slide.Layout)
		case decision.AvoidVariant != "":
			if v, ok := s.Selector.SelectVariantExcept(slide.Classification, slide.Layout, decision.AvoidVariant); ok {
				d.AvoidedVariant = decision.AvoidVariant
				d.OverrideReason = decision.Reason
				slide.VariantID, d.VariantSource = v, domain.VariantFromCatalog
			} else {
				logger.Debug("slide %s: no alternative to variant %s", slide.Label(), decision.AvoidVariant)
			}
		}
	}

	s.Tracker.AddSlide(slide.Classification, slide.VariantID, d.SemanticGroup, slide.Position)

	if p.opts.DeriveTitles && slide.GeneratedTitle == "" {
		slide.GeneratedTitle = strings.TrimSpace(slide.Title)
	}
	if v, ok := TruncateWords(slide.GeneratedTitle, domain.MaxGeneratedTitleLen); ok {
		slide.GeneratedTitle = v
		d.Truncated = append(d.Truncated, "generated_title")
	}
	if v, ok := TruncateWords(slide.GeneratedSubtitle, domain.MaxGeneratedSubtitleLen); ok {
		slide.GeneratedSubtitle = v
		d.Truncated = append(d.Truncated, "generated_subtitle")
	}

	d.Classification = slide.Classification
	d.Dispatch = domain.DispatchFor(slide.Classification)
	d.VariantID = slide.VariantID
	return d
}

// selectVariant picks a variant for slides that take one. Pyramid and
// analytics slides get none.
func (p *StrawmanPreparer) selectVariant(class domain.Classification, layout domain.Layout) (string, domain.VariantSource) {
	if !class.IsHero() && !class.IsContent() {
		return "", domain.VariantNotNeeded
	}
	v, src, err := p.session.Selector.SelectVariantWithFallback(class, layout, "")
	if err != nil {
		logger.Warn("select variant for %s: %v", class, err)
		return "", domain.VariantNotNeeded
	}
	return v, src
}

// TruncateWords shortens s to at most limit runes, cutting at the last word
// boundary when there is one. It reports whether s was shortened.
func TruncateWords(s string, limit int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	cut := runes[:limit]
	if !unicode.IsSpace(runes[limit]) {
		for i := len(cut) - 1; i > 0; i-- {
			if unicode.IsSpace(cut[i]) {
				cut = cut[:i]
				break
			}
		}
	}
	return strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}), true
}
