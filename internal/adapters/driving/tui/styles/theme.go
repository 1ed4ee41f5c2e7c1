// Package styles provides the colour theme and lipgloss styles shared by
// the progress view and the CLI summaries.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// Theme defines the colour palette.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title is used for report headers.
	Title lipgloss.Style

	// Subtitle is used for section headers within a report.
	Subtitle lipgloss.Style

	Normal  lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Label renders the left column of key/value lines.
	Label lipgloss.Style

	// StatusBar is the bottom line of the progress view.
	StatusBar lipgloss.Style

	// Help renders key hints.
	Help lipgloss.Style

	// Box frames summaries and error reports.
	Box lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme:    theme,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Success:  lipgloss.NewStyle().Foreground(theme.Success),
		Warning:  lipgloss.NewStyle().Foreground(theme.Warning),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
		Label:    lipgloss.NewStyle().Foreground(theme.Muted).Width(20),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(theme.Muted),
		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Outcome returns the style for a slide outcome.
func (s *Styles) Outcome(status domain.OutcomeStatus) lipgloss.Style {
	switch status {
	case domain.OutcomeGenerated:
		return s.Success
	case domain.OutcomeFailed:
		return s.Error
	case domain.OutcomeSkipped:
		return s.Warning
	default:
		return s.Muted
	}
}

// OutcomeSymbol returns a one-character marker for a slide outcome.
func OutcomeSymbol(status domain.OutcomeStatus) string {
	switch status {
	case domain.OutcomeGenerated:
		return "✓"
	case domain.OutcomeFailed:
		return "✗"
	case domain.OutcomeSkipped:
		return "-"
	default:
		return "·"
	}
}

// Severity returns the style for a critical issue severity.
func (s *Styles) Severity(sev domain.Severity) lipgloss.Style {
	switch sev {
	case domain.SeverityHigh:
		return s.Error
	case domain.SeverityMedium:
		return s.Warning
	default:
		return s.Muted
	}
}
