// Package keymap defines keybindings for the progress view.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the progress view keybindings.
type KeyMap struct {
	// Quit cancels routing and exits.
	Quit key.Binding

	// Details toggles the failure details panel.
	Details key.Binding

	// Close exits once routing has finished.
	Close key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Details: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "failure details"),
		),
		Close: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "close"),
		),
	}
}

// RunningHelp returns the hints shown while routing.
func (k *KeyMap) RunningHelp() []key.Binding {
	return []key.Binding{k.Details, k.Quit}
}

// DoneHelp returns the hints shown once routing has finished.
func (k *KeyMap) DoneHelp() []key.Binding {
	return []key.Binding{k.Details, k.Close}
}
