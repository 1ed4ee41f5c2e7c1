package driven

import (
	"context"
	"strings"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// Remote endpoint paths.
const (
	ContentEndpoint     = "/v1.2/generate"
	HeroTitleEndpoint   = "/v1.2/hero/title"
	HeroSectionEndpoint = "/v1.2/hero/section"
	HeroClosingEndpoint = "/v1.2/hero/closing"
	PyramidEndpoint     = "/v1.0/pyramid/generate"
	ChartEndpointPrefix = "/api/v1/analytics/charts/"
	VariantsEndpoint    = "/api/v1/variants"
)

// HeroEndpoint returns the hero endpoint for a hero classification.
// Section dividers and unknown labels use the section endpoint.
func HeroEndpoint(c domain.Classification) string {
	switch c {
	case domain.ClassTitleSlide:
		return HeroTitleEndpoint
	case domain.ClassClosingSlide:
		return HeroClosingEndpoint
	default:
		return HeroSectionEndpoint
	}
}

// ChartEndpoint returns the analytics endpoint for a chart kind.
func ChartEndpoint(chartType string) string {
	return ChartEndpointPrefix + strings.TrimSpace(chartType)
}

// PriorSlide is a one-line summary of an earlier slide, sent as context
// with content requests.
type PriorSlide struct {
	SlideNumber    int    `json:"slide_number"`
	Title          string `json:"title"`
	Classification string `json:"classification"`
}

// SlideSpec describes the slide a content request is for.
type SlideSpec struct {
	SlideTitle   string   `json:"slide_title"`
	SlidePurpose string   `json:"slide_purpose"`
	KeyMessage   string   `json:"key_message"`
	TargetPoints []string `json:"target_points,omitempty"`
	Tone         string   `json:"tone"`
	Audience     string   `json:"audience"`
}

// PresentationSpec carries deck-level context for a content request.
type PresentationSpec struct {
	PresentationTitle  string       `json:"presentation_title"`
	PresentationType   string       `json:"presentation_type"`
	CurrentSlideNumber int          `json:"current_slide_number"`
	TotalSlides        int          `json:"total_slides"`
	PriorSlidesSummary []PriorSlide `json:"prior_slides_summary,omitempty"`
}

// ContentRequest is the payload for the unified content endpoint.
type ContentRequest struct {
	VariantID               string           `json:"variant_id"`
	SlideID                 string           `json:"slide_id"`
	SlideSpec               SlideSpec        `json:"slide_spec"`
	PresentationSpec        PresentationSpec `json:"presentation_spec"`
	EnableParallel          bool             `json:"enable_parallel"`
	ValidateCharacterCounts bool             `json:"validate_character_counts"`
}

// HeroContext is the thematic context sent with hero requests.
type HeroContext struct {
	Theme             string `json:"theme"`
	Audience          string `json:"audience"`
	PresentationTitle string `json:"presentation_title"`
	Duration          string `json:"presentation_duration,omitempty"`
	Footer            string `json:"footer_text,omitempty"`
}

// HeroRequest is the payload for the hero endpoints.
type HeroRequest struct {
	SlideNumber int         `json:"slide_number"`
	SlideID     string      `json:"slide_id"`
	SlideType   string      `json:"slide_type"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle,omitempty"`
	Narrative   string      `json:"narrative"`
	Topics      []string    `json:"topics"`
	Context     HeroContext `json:"context"`
}

// PyramidContext is the deck context sent with pyramid requests.
type PyramidContext struct {
	PresentationTitle string `json:"presentation_title"`
	SlideNumber       int    `json:"slide_number"`
	SlidePurpose      string `json:"slide_purpose"`
}

// PyramidRequest is the payload for the illustrator pyramid endpoint.
type PyramidRequest struct {
	SlideID             string         `json:"slide_id"`
	NumLevels           int            `json:"num_levels"`
	Topic               string         `json:"topic"`
	TargetPoints        []string       `json:"target_points"`
	Tone                string         `json:"tone"`
	Audience            string         `json:"audience"`
	Context             PyramidContext `json:"context"`
	ValidateConstraints bool           `json:"validate_constraints"`
}

// ChartContext is the deck context sent with chart requests.
type ChartContext struct {
	PresentationTitle string `json:"presentation_title"`
	SlideTitle        string `json:"slide_title"`
	SlideNumber       int    `json:"slide_number"`
	Tone              string `json:"tone"`
	Audience          string `json:"audience"`
}

// ChartRequest is the payload for the analytics chart endpoint.
// ChartType is carried in the URL path, not the body.
type ChartRequest struct {
	ChartType string             `json:"-"`
	SlideID   string             `json:"slide_id"`
	Title     string             `json:"chart_title"`
	Narrative string             `json:"narrative"`
	Data      []domain.DataPoint `json:"data"`
	Context   ChartContext       `json:"context"`
}

// ContentService generates body content for content-shell slides.
type ContentService interface {
	// GenerateContent posts a variant-specific request to the content endpoint.
	GenerateContent(ctx context.Context, req *ContentRequest) (*domain.GeneratedContent, error)
}

// HeroService generates title, section and closing slides.
type HeroService interface {
	// GenerateHero posts to the hero endpoint chosen by classification.
	GenerateHero(ctx context.Context, class domain.Classification, req *HeroRequest) (*domain.GeneratedContent, error)
}

// PyramidService generates pyramid diagrams.
type PyramidService interface {
	// GeneratePyramid posts to the illustrator pyramid endpoint.
	GeneratePyramid(ctx context.Context, req *PyramidRequest) (*domain.GeneratedContent, error)
}

// AnalyticsService generates charts.
type AnalyticsService interface {
	// GenerateChart posts to the chart endpoint for req.ChartType.
	GenerateChart(ctx context.Context, req *ChartRequest) (*domain.GeneratedContent, error)
}
