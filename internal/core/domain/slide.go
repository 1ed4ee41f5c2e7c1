package domain

import (
	"fmt"
	"strings"
)

// Text limits enforced on generated slide and presentation fields.
const (
	// MaxGeneratedTitleLen is the maximum length of a generated slide title.
	MaxGeneratedTitleLen = 50

	// MaxGeneratedSubtitleLen is the maximum length of a generated slide subtitle.
	MaxGeneratedSubtitleLen = 90

	// MaxFooterLen is the maximum length of the presentation footer text.
	MaxFooterLen = 20
)

// Layout is the coarse page layout a slide is rendered into.
// The layout is decided from slide position before classification and is
// authoritative: variant selection must never contradict it.
type Layout string

// Available layouts.
const (
	// LayoutHero is the full-bleed layout for title, section and closing slides.
	LayoutHero Layout = "hero"

	// LayoutContentShell is the layout for all body-content slides.
	LayoutContentShell Layout = "content_shell"
)

// IsValid returns true if the layout is recognised.
func (l Layout) IsValid() bool {
	return l == LayoutHero || l == LayoutContentShell
}

// String returns the string representation.
func (l Layout) String() string {
	return string(l)
}

// LayoutForPosition returns the layout implied by a slide's position:
// the first and last slides use the hero layout, everything else the content shell.
func LayoutForPosition(position, total int) Layout {
	if position == 1 || position == total {
		return LayoutHero
	}
	return LayoutContentShell
}

// DataPoint is a single labelled value in a chart series.
type DataPoint struct {
	Label string  `json:"label" toml:"label"`
	Value float64 `json:"value" toml:"value"`
}

// StructuralHints carries optional structured needs attached to a slide
// by the outline author.
type StructuralHints struct {
	// AnalyticsNeeded is a free-text description of a chart need.
	AnalyticsNeeded string `json:"analytics_needed,omitempty" toml:"analytics_needed,omitempty"`

	// ChartType explicitly requests a chart kind (e.g. "bar_vertical", "pie").
	// A non-empty chart type marks the slide as an analytics slide.
	ChartType string `json:"chart_type,omitempty" toml:"chart_type,omitempty"`

	// DataPoints is the series to plot. May be empty.
	DataPoints []DataPoint `json:"data_points,omitempty" toml:"data_points,omitempty"`

	// DiagramNeeded is a free-text description of a diagram need.
	DiagramNeeded string `json:"diagram_needed,omitempty" toml:"diagram_needed,omitempty"`

	// DiagramType explicitly requests a diagram kind. "pyramid" marks the
	// slide as a pyramid slide.
	DiagramType string `json:"diagram_type,omitempty" toml:"diagram_type,omitempty"`

	// TableNeeded is a free-text description of a table need.
	TableNeeded string `json:"table_needed,omitempty" toml:"table_needed,omitempty"`
}

// Text returns all free-text hints joined for keyword matching.
func (h StructuralHints) Text() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{h.AnalyticsNeeded, h.DiagramNeeded, h.TableNeeded, h.ChartType} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Slide is one planned presentation page.
type Slide struct {
	// Position is the 1-indexed ordinal of the slide within the strawman.
	Position int `json:"slide_number" toml:"slide_number"`

	// ID is the stable slide identifier.
	ID string `json:"slide_id" toml:"slide_id"`

	// Title is the author's working title.
	Title string `json:"title" toml:"title"`

	// Narrative is the free-text description of what the slide says.
	Narrative string `json:"narrative" toml:"narrative"`

	// KeyPoints is the ordered list of points the slide must make.
	KeyPoints []string `json:"key_points" toml:"key_points"`

	// Hints carries optional structured needs.
	Hints StructuralHints `json:"hints,omitempty" toml:"hints,omitempty"`

	// Classification is the taxonomy label. Empty until classified.
	Classification Classification `json:"classification,omitempty" toml:"classification,omitempty"`

	// Layout is the coarse layout. Empty until prepared.
	Layout Layout `json:"layout,omitempty" toml:"layout,omitempty"`

	// VariantID is the selected visual variant. Empty until selected.
	VariantID string `json:"variant_id,omitempty" toml:"variant_id,omitempty"`

	// GeneratedTitle is the short display title (max 50 chars).
	GeneratedTitle string `json:"generated_title,omitempty" toml:"generated_title,omitempty"`

	// GeneratedSubtitle is the display subtitle (max 90 chars).
	GeneratedSubtitle string `json:"generated_subtitle,omitempty" toml:"generated_subtitle,omitempty"`
}

// Label returns a short human-readable identifier for logs and messages.
func (s *Slide) Label() string {
	if s.ID != "" {
		return fmt.Sprintf("#%d %s", s.Position, s.ID)
	}
	return fmt.Sprintf("#%d", s.Position)
}

// KeyMessage returns the first key point, or the narrative when there are none.
func (s *Slide) KeyMessage() string {
	if len(s.KeyPoints) > 0 {
		return s.KeyPoints[0]
	}
	return s.Narrative
}

// Strawman is the approved presentation outline: ordered slides plus
// presentation-level metadata.
type Strawman struct {
	// Title is the presentation title.
	Title string `json:"main_title" toml:"main_title"`

	// Theme is the overall visual/narrative theme.
	Theme string `json:"overall_theme" toml:"overall_theme"`

	// Audience describes who the deck is for.
	Audience string `json:"target_audience" toml:"target_audience"`

	// Duration is the intended presentation length (e.g. "20 minutes").
	Duration string `json:"presentation_duration" toml:"presentation_duration"`

	// Footer is the footer text shown on content slides (max 20 chars).
	Footer string `json:"footer_text,omitempty" toml:"footer_text,omitempty"`

	// Slides is the ordered slide list.
	Slides []Slide `json:"slides" toml:"slides"`
}

// Tone returns the presentation tone derived from the theme.
func (s *Strawman) Tone() string {
	if s.Theme == "" {
		return "professional"
	}
	return s.Theme
}

// CheckPositions verifies slide positions are contiguous and 1-indexed.
func (s *Strawman) CheckPositions() error {
	for i := range s.Slides {
		if s.Slides[i].Position != i+1 {
			return fmt.Errorf("%w: slide at index %d has position %d, expected %d",
				ErrInvalidInput, i, s.Slides[i].Position, i+1)
		}
	}
	return nil
}

// Normalise assigns missing positions from slice order.
// Slides with an explicit position are left untouched.
func (s *Strawman) Normalise() {
	for i := range s.Slides {
		if s.Slides[i].Position == 0 {
			s.Slides[i].Position = i + 1
		}
	}
}
