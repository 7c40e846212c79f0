// Package tui provides the Bubble Tea front end for trivia duels.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the turn clock by one second.
// Turn is the turn token the tick was scheduled for; ticks for any other
// turn are dropped.
type TickMsg struct {
	Turn uint64
	At   time.Time
	seq  int
}

// RevealDoneMsg fires when the feedback panel for a selection has been shown
// long enough and the answer should reach the game.
type RevealDoneMsg struct {
	Turn uint64
}

// revealCmd schedules the end of the feedback panel for turn.
func revealCmd(turn uint64, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return RevealDoneMsg{Turn: turn} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RevealDoneMsg{Turn: turn}
	})
}
