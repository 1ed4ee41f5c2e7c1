// Package status provides the status bar of the progress view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/deckroute/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/deckroute/internal/adapters/driving/tui/styles"
)

// State is the routing state shown on the left of the bar.
type State string

const (
	StateRouting State = "routing"
	StateDone    State = "done"
	StateError   State = "error"
)

// Counts are the per-outcome slide counts.
type Counts struct {
	Generated int
	Failed    int
	Skipped   int
}

// Bar displays routing status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	counts  Counts
	width   int
}

// NewBar creates a new status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateRouting, width: 80}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (s *Bar) renderLeft() string {
	counts := fmt.Sprintf("%d generated, %d failed, %d skipped", s.counts.Generated, s.counts.Failed, s.counts.Skipped)
	switch s.state {
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateDone:
		if s.counts.Failed > 0 {
			return s.styles.Warning.Render("Done: " + counts)
		}
		return s.styles.Success.Render("Done: " + counts)
	default:
		return s.styles.Muted.Render("Routing... " + counts)
	}
}

func (s *Bar) renderRight() string {
	bindings := s.Bindings()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message shown in StateError.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// SetCounts replaces the outcome counts.
func (s *Bar) SetCounts(c Counts) {
	s.counts = c
}

// Counts returns the outcome counts.
func (s *Bar) Counts() Counts {
	return s.counts
}

// SetWidth sets the bar width.
func (s *Bar) SetWidth(width int) {
	if width > 0 {
		s.width = width
	}
}

// Bindings returns the hints currently shown.
func (s *Bar) Bindings() []key.Binding {
	if s.state == StateRouting {
		return s.keymap.RunningHelp()
	}
	return s.keymap.DoneHelp()
}
