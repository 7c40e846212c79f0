package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trivia-duel/internal/registry"
)

// MenuModel is the Bubble Tea model for the category picker.
type MenuModel struct {
	items          []registry.CategoryInfo
	cursor         int
	width          int
	height         int
	notice         string // Shown under the title, e.g. why a game could not start
	keyMapper      *KeyMapper
	quitting       bool
	selected       *registry.CategoryInfo // Set when user selects a category
	openScoreboard bool                   // True if user pressed Tab for the match log
}

// NewMenuModel creates a new menu model.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{
		items:     registry.List(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// WithNotice returns the menu with a message under the title.
func (m MenuModel) WithNotice(s string) MenuModel {
	m.notice = s
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  T R I V I A   D U E L  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a category", m.width))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(wrongStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var list strings.Builder
	for i, item := range m.items {
		cursor := "  "
		title := item.Title
		if i == m.cursor {
			cursor = "> "
			title = cursorStyle.Render(" " + title + " ")
		} else {
			title = " " + title + " "
		}
		fmt.Fprintf(&list, "%s%s\n", cursor, title)
		if item.Description != "" {
			fmt.Fprintf(&list, "    %s\n", dimStyle.Render(item.Description))
		}
	}
	b.WriteString(centerBlock(strings.TrimRight(list.String(), "\n"), m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Match log  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected category, or nil if none selected.
func (m MenuModel) Selected() *registry.CategoryInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the match log.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
