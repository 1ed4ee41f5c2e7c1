package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, km.Quit))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, km.Details))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Close))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Quit))
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.RunningHelp(), 2)
	assert.Equal(t, "close", km.DoneHelp()[1].Help().Desc)
}
