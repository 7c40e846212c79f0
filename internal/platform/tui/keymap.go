package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trivia-duel/internal/core"
)

// KeyMapper translates Bubble Tea key messages to player inputs.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message on the game screen.
// Both players share the keyboard; the engine decides whose turn it is.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Input {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.Input{Action: core.ActionQuit, Option: -1}
	case "1", "2", "3", "4":
		return core.SelectOption(int(key[0] - '1'))
	case "w", "up", "k":
		return core.Input{Action: core.ActionUp, Option: -1}
	case "s", "down", "j":
		return core.Input{Action: core.ActionDown, Option: -1}
	case "enter", " ":
		return core.Input{Action: core.ActionConfirm, Option: -1}
	case "b", "esc":
		return core.Input{Action: core.ActionBack, Option: -1}
	case "f":
		return core.Input{Action: core.ActionForfeit, Option: -1}
	case "r":
		return core.Input{Action: core.ActionRestart, Option: -1}
	}

	return core.NoInput
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
