package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/trivia-duel/internal/storage"
)

// maxMatches caps the recent matches loaded into the table.
const maxMatches = 100

// scoreView selects which table the scoreboard shows.
type scoreView int

const (
	viewStandings scoreView = iota
	viewMatches
)

func (v scoreView) String() string {
	if v == viewMatches {
		return "Recent matches"
	}
	return "Standings"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "standings/matches"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows this session's match log.
type ScoreboardModel struct {
	store     *storage.Store
	view      scoreView
	standings []storage.Standing
	matches   []storage.MatchRecord
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	return m
}

// load reads both views from the store.
func (m *ScoreboardModel) load() {
	m.standings, m.matches, m.loadErr = nil, nil, nil
	if m.store == nil {
		return
	}
	if m.standings, m.loadErr = m.store.Standings(); m.loadErr != nil {
		return
	}
	m.matches, m.loadErr = m.store.RecentMatches(maxMatches)
}

// createTable creates a table for the current view.
func (m *ScoreboardModel) createTable() table.Model {
	var columns []table.Column
	var rows []table.Row

	switch m.view {
	case viewStandings:
		columns = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Player", Width: MaxNameLength},
			{Title: "Played", Width: 7},
			{Title: "W", Width: 4},
			{Title: "D", Width: 4},
			{Title: "L", Width: 4},
			{Title: "Points", Width: 8},
		}
		for i, s := range m.standings {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", i+1),
				s.Name,
				fmt.Sprintf("%d", s.Played),
				fmt.Sprintf("%d", s.Wins),
				fmt.Sprintf("%d", s.Draws),
				fmt.Sprintf("%d", s.Losses),
				fmt.Sprintf("%d", s.Points),
			})
		}

	case viewMatches:
		columns = []table.Column{
			{Title: "Category", Width: 10},
			{Title: "Players", Width: 2*MaxNameLength + 4},
			{Title: "Score", Width: 9},
			{Title: "Winner", Width: MaxNameLength},
			{Title: "Time", Width: 6},
		}
		for _, r := range m.matches {
			winner := r.Winner()
			switch {
			case winner == "":
				winner = "draw"
			case r.EndReason == "forfeit":
				winner += " (ff)"
			}
			rows = append(rows, table.Row{
				r.Category,
				r.Player1 + " vs " + r.Player2,
				fmt.Sprintf("%d-%d", r.Score1, r.Score2),
				winner,
				fmt.Sprintf("%d:%02d", r.DurationSecs/60, r.DurationSecs%60),
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // Leave room for header, tabs, help
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextView):
			if m.view == viewStandings {
				m.view = viewMatches
			} else {
				m.view = viewStandings
			}
			m.table = m.createTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("MATCH LOG"), m.width))
	b.WriteString("\n\n")

	// View tabs
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, 0, 2)
	for _, v := range []scoreView{viewStandings, viewMatches} {
		if v == m.view {
			tabs = append(tabs, activeTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, dimStyle.Render(" "+v.String()+" "))
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerBlock(boxStyle.Render(m.renderTableContent()), m.width))

	// Help bar
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Match log unavailable:\n" + m.loadErr.Error())
	case len(m.matches) == 0:
		return emptyStyle.Render("No matches played yet.\nThe log lasts until you leave.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// Rows returns the number of rows in the current view.
func (m ScoreboardModel) Rows() int {
	return len(m.table.Rows())
}
