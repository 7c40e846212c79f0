package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/trivia-duel/internal/core"
	"github.com/vovakirdan/trivia-duel/internal/engine"
)

// MaxNameLength is the width of the name fields.
const MaxNameLength = core.MaxNameLength

// SetupModel collects the names and avatars of both players.
type SetupModel struct {
	title   string
	inputs  [2]textinput.Model
	avatars []string
	choice  [2]int
	focus   core.PlayerIndex
	err     string
	width   int

	done     bool
	back     bool
	quitting bool
}

// NewSetupModel creates the setup screen. prev pre-fills the form, e.g.
// with the players of the previous game.
func NewSetupModel(title string, avatars []string, prev [2]engine.PlayerInfo, width int) SetupModel {
	m := SetupModel{
		title:   title,
		avatars: avatars,
		width:   width,
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = core.PlayerIndex(i).String()
		ti.CharLimit = MaxNameLength
		ti.Width = MaxNameLength + 2
		ti.SetValue(prev[i].Name)
		m.inputs[i] = ti

		// Different default avatars so the seats are told apart at a glance.
		m.choice[i] = i % max(1, len(avatars))
		for j, a := range avatars {
			if a == prev[i].Avatar {
				m.choice[i] = j
			}
		}
	}
	m.inputs[0].Focus()
	return m
}

// Init starts the cursor blinking.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the setup screen.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.back = true
			return m, nil
		case "tab", "shift+tab":
			cmd := m.setFocus(m.focus.Other())
			return m, cmd
		case "up":
			m.cycleAvatar(-1)
			return m, nil
		case "down":
			m.cycleAvatar(1)
			return m, nil
		case "enter":
			if m.focus == core.Player1 {
				cmd := m.setFocus(core.Player2)
				return m, cmd
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *SetupModel) setFocus(p core.PlayerIndex) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = p
	return m.inputs[p].Focus()
}

func (m *SetupModel) cycleAvatar(delta int) {
	n := len(m.avatars)
	if n == 0 {
		return
	}
	m.choice[m.focus] = (m.choice[m.focus] + delta + n) % n
}

// submit validates the form. Both names must be non-empty after trimming.
func (m SetupModel) submit() (tea.Model, tea.Cmd) {
	for i, in := range m.inputs {
		if strings.TrimSpace(in.Value()) == "" {
			m.err = fmt.Sprintf("%s needs a name.", core.PlayerIndex(i))
			cmd := m.setFocus(core.PlayerIndex(i))
			return m, cmd
		}
	}
	m.err = ""
	m.done = true
	return m, nil
}

// View renders the setup form.
func (m SetupModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Who is playing?", m.width))
	b.WriteString("\n\n")

	for i := range m.inputs {
		p := core.PlayerIndex(i)
		label := lipgloss.NewStyle().Bold(true).Width(10).Foreground(seatColors[p]).Render(p.String())
		avatar := ""
		if len(m.avatars) > 0 {
			avatar = m.avatars[m.choice[i]]
		}
		cursor := "  "
		if p == m.focus {
			cursor = "> "
		}
		row := fmt.Sprintf("%s%s %s  %s", cursor, label, avatar, m.inputs[i].View())
		b.WriteString(centerBlock(row, m.width))
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(centerText(wrongStyle.Render(m.err), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Tab: Switch player  |  Up/Down: Avatar  |  Enter: Start  |  Esc: Back"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")
	return b.String()
}

// Players returns the entered players. Names are trimmed.
func (m SetupModel) Players() [2]engine.PlayerInfo {
	var out [2]engine.PlayerInfo
	for i, in := range m.inputs {
		out[i].Name = strings.TrimSpace(in.Value())
		if len(m.avatars) > 0 {
			out[i].Avatar = m.avatars[m.choice[i]]
		}
	}
	return out
}

// Done returns true once both players are entered.
func (m SetupModel) Done() bool {
	return m.done
}

// Back returns true if the user left the form.
func (m SetupModel) Back() bool {
	return m.back
}

// IsQuitting returns true if user requested to quit.
func (m SetupModel) IsQuitting() bool {
	return m.quitting
}
