package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/trivia-duel/internal/core"
	"github.com/vovakirdan/trivia-duel/internal/engine"
)

// seatColors gives each seat its own accent.
var seatColors = [2]lipgloss.Color{
	core.Player1: lipgloss.Color("12"),
	core.Player2: lipgloss.Color("208"),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	correctStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	wrongStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// renderPlayer draws one seat's panel: avatar, name, score, rounds and clock.
func renderPlayer(st engine.GameState, seat core.PlayerIndex, width int) string {
	p := st.Players[seat]
	ps := st.PlayerStates[seat]
	active := st.Phase == engine.PhaseTurnActive && st.CurrentPlayerIndex == seat

	name := lipgloss.NewStyle().Bold(true).Foreground(seatColors[seat]).Render(p.Name)
	if p.Avatar != "" {
		name = p.Avatar + " " + name
	}

	var status string
	switch {
	case ps.HasAnswered:
		status = dimStyle.Render("answered")
	case active:
		status = timerBar(ps.TimeLeft, st.TimePerTurn, 10)
	default:
		status = dimStyle.Render("waiting")
	}

	body := fmt.Sprintf("%s\nScore  %d\nRounds %d\n%s", name, p.Score, p.RoundsWon, status)

	style := boxStyle.Width(width)
	if active {
		style = style.BorderForeground(seatColors[seat])
	}
	return style.Render(body)
}

// timerBar renders the remaining seconds as a bar followed by the count.
func timerBar(left, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := left * width / total
	filled = max(0, min(width, filled))

	color := lipgloss.Color("10")
	switch {
	case left*4 <= total:
		color = lipgloss.Color("9")
	case left*2 <= total:
		color = lipgloss.Color("11")
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %2ds", bar, left)
}

// swatch renders a solid block of the given #rrggbb colour.
func swatch(hex string, width, height int) string {
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Render(strings.Join(lines, "\n"))
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerBlock centers a multi-line block within width.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
