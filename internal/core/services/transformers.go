package services

import (
	"strings"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
)

// Request shaping constants.
const (
	// priorSlidesWindow is how many earlier slides are summarised in content requests.
	priorSlidesWindow = 5

	minPyramidLevels     = 3
	maxPyramidLevels     = 6
	defaultPyramidLevels = 4
)

// DefaultChartType is used for analytics slides that name no chart kind.
const DefaultChartType = "bar_vertical"

// PlaceholderWarning is attached to analytics slides routed without data.
const PlaceholderWarning = "no data points supplied; a placeholder series was used"

// PlaceholderSeries returns the series sent for analytics slides without data.
func PlaceholderSeries() []domain.DataPoint {
	return []domain.DataPoint{
		{Label: "Q1", Value: 100},
		{Label: "Q2", Value: 120},
		{Label: "Q3", Value: 140},
		{Label: "Q4", Value: 160},
	}
}

// BuildHeroRequest builds the payload for a hero endpoint.
func BuildHeroRequest(slide *domain.Slide, strawman *domain.Strawman) *driven.HeroRequest {
	return &driven.HeroRequest{
		SlideNumber: slide.Position,
		SlideID:     slide.ID,
		SlideType:   string(slide.Classification),
		Title:       slide.GeneratedTitle,
		Subtitle:    slide.GeneratedSubtitle,
		Narrative:   stripGroupMarker(slide.Narrative),
		Topics:      nonNil(slide.KeyPoints),
		Context: driven.HeroContext{
			Theme:             strawman.Tone(),
			Audience:          strawman.Audience,
			PresentationTitle: strawman.Title,
			Duration:          strawman.Duration,
			Footer:            strawman.Footer,
		},
	}
}

// BuildContentRequest builds the variant-specific payload for the content
// endpoint, including a summary of up to five preceding slides.
func BuildContentRequest(slide *domain.Slide, strawman *domain.Strawman) *driven.ContentRequest {
	return &driven.ContentRequest{
		VariantID: slide.VariantID,
		SlideID:   slide.ID,
		SlideSpec: driven.SlideSpec{
			SlideTitle:   slide.GeneratedTitle,
			SlidePurpose: stripGroupMarker(slide.Narrative),
			KeyMessage:   stripGroupMarker(slide.KeyMessage()),
			TargetPoints: nonNil(slide.KeyPoints),
			Tone:         strawman.Tone(),
			Audience:     strawman.Audience,
		},
		PresentationSpec: driven.PresentationSpec{
			PresentationTitle:  strawman.Title,
			PresentationType:   strawman.Theme,
			CurrentSlideNumber: slide.Position,
			TotalSlides:        len(strawman.Slides),
			PriorSlidesSummary: PriorSlidesSummary(strawman, slide.Position),
		},
		EnableParallel:          true,
		ValidateCharacterCounts: true,
	}
}

// PriorSlidesSummary summarises the slides immediately before position.
func PriorSlidesSummary(strawman *domain.Strawman, position int) []driven.PriorSlide {
	var prior []driven.PriorSlide
	for i := range strawman.Slides {
		s := &strawman.Slides[i]
		if s.Position >= position {
			continue
		}
		title := s.GeneratedTitle
		if title == "" {
			title = s.Title
		}
		prior = append(prior, driven.PriorSlide{
			SlideNumber:    s.Position,
			Title:          title,
			Classification: string(s.Classification),
		})
	}
	if len(prior) > priorSlidesWindow {
		prior = prior[len(prior)-priorSlidesWindow:]
	}
	return prior
}

// PyramidLevels returns the pyramid depth for a key-point count.
func PyramidLevels(keyPoints int) int {
	switch {
	case keyPoints == 0:
		return defaultPyramidLevels
	case keyPoints < minPyramidLevels:
		return minPyramidLevels
	case keyPoints > maxPyramidLevels:
		return maxPyramidLevels
	default:
		return keyPoints
	}
}

// BuildPyramidRequest builds the payload for the illustrator pyramid endpoint.
func BuildPyramidRequest(slide *domain.Slide, strawman *domain.Strawman) *driven.PyramidRequest {
	topic := slide.GeneratedTitle
	if topic == "" {
		topic = slide.Title
	}
	return &driven.PyramidRequest{
		SlideID:      slide.ID,
		NumLevels:    PyramidLevels(len(slide.KeyPoints)),
		Topic:        topic,
		TargetPoints: nonNil(slide.KeyPoints),
		Tone:         strawman.Tone(),
		Audience:     strawman.Audience,
		Context: driven.PyramidContext{
			PresentationTitle: strawman.Title,
			SlideNumber:       slide.Position,
			SlidePurpose:      stripGroupMarker(slide.Narrative),
		},
		ValidateConstraints: true,
	}
}

// BuildChartRequest builds the payload for the chart endpoint. Slides
// without data points get the placeholder series and a warning.
func BuildChartRequest(slide *domain.Slide, strawman *domain.Strawman) (*driven.ChartRequest, []string) {
	var warnings []string
	data := slide.Hints.DataPoints
	if len(data) == 0 {
		data = PlaceholderSeries()
		warnings = append(warnings, PlaceholderWarning)
	}

	chartType := strings.TrimSpace(slide.Hints.ChartType)
	if chartType == "" {
		chartType = DefaultChartType
	}

	narrative := strings.TrimSpace(stripGroupMarker(slide.Narrative))
	if narrative == "" {
		narrative = slide.Hints.AnalyticsNeeded
	}

	return &driven.ChartRequest{
		ChartType: chartType,
		SlideID:   slide.ID,
		Title:     slide.GeneratedTitle,
		Narrative: narrative,
		Data:      data,
		Context: driven.ChartContext{
			PresentationTitle: strawman.Title,
			SlideTitle:        slide.GeneratedTitle,
			SlideNumber:       slide.Position,
			Tone:              strawman.Tone(),
			Audience:          strawman.Audience,
		},
	}, warnings
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
