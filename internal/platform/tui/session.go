package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trivia-duel/internal/config"
	"github.com/vovakirdan/trivia-duel/internal/core"
	"github.com/vovakirdan/trivia-duel/internal/engine"
	"github.com/vovakirdan/trivia-duel/internal/registry"
	"github.com/vovakirdan/trivia-duel/internal/storage"
)

// Options configures a terminal session.
type Options struct {
	Trivia  config.TriviaConfig
	Runtime core.RuntimeConfig
	Logger  *log.Logger

	// Category, when set, skips the menu and goes straight to player setup.
	Category string
}

type screen int

const (
	screenMenu screen = iota
	screenSetup
	screenGame
	screenScores
)

// SessionModel manages the full session flow:
// menu -> setup -> game -> match log -> menu.
// It is the top-level model for both local and SSH play.
type SessionModel struct {
	store    *storage.Store
	opts     Options
	logger   *log.Logger
	screen   screen
	menu     MenuModel
	setup    SetupModel
	game     GameModel
	scores   ScoreboardModel
	category registry.CategoryInfo
	players  [2]engine.PlayerInfo // Last players, to pre-fill the next setup
	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, opts Options) SessionModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := SessionModel{
		store:  store,
		opts:   opts,
		logger: logger,
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}
	m.menu = NewMenuModel(m.width, m.height)

	if opts.Category != "" {
		if cat, err := registry.Create(opts.Category); err == nil {
			m.category = registry.CategoryInfo{ID: cat.ID(), Title: cat.Title(), Description: cat.Description()}
			m.screen = screenSetup
			m.setup = NewSetupModel(cat.Title(), opts.Trivia.AvatarChoices(), m.players, m.width)
		} else {
			m.menu = m.menu.WithNotice(err.Error())
		}
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenSetup {
		return m.setup.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenSetup:
		return m.updateSetup(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.width, m.height)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		m.category = *m.menu.Selected()
		m.setup = NewSetupModel(m.category.Title, m.opts.Trivia.AvatarChoices(), m.players, m.width)
		m.screen = screenSetup
		return m, m.setup.Init()
	}

	return m, cmd
}

// updateSetup handles updates on the player setup screen.
func (m SessionModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	newSetup, cmd := m.setup.Update(msg)
	if setupModel, ok := newSetup.(SetupModel); ok {
		m.setup = setupModel
	}

	switch {
	case m.setup.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.setup.Back():
		return m.toMenu("")

	case m.setup.Done():
		m.players = m.setup.Players()
		return m.startGame()
	}

	return m, cmd
}

// startGame builds the game screen for the chosen category and players.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	cat, err := registry.Create(m.category.ID)
	if err != nil {
		return m.toMenu(err.Error())
	}
	ecfg, err := m.opts.Trivia.EngineConfig(cat.ID())
	if err != nil {
		return m.toMenu(err.Error())
	}

	seed := m.opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game, err := NewGameModel(cat, m.store, GameOptions{
		Engine:      ecfg,
		Players:     m.players,
		RevealDelay: m.opts.Trivia.RevealDelay(),
		Seed:        seed,
		Logger:      m.logger,
	})
	if err != nil {
		m.logger.Error("could not start game", "category", cat.ID(), "error", err)
		return m.toMenu(err.Error())
	}
	game.width, game.height = m.width, m.height

	m.game = game
	m.screen = screenGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newGame, cmd := m.game.Update(msg)
	if gameModel, ok := newGame.(GameModel); ok {
		m.game = gameModel
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		return m.toMenu("")

	case m.game.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.width, m.height)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	return m, cmd
}

// updateScores handles updates on the match log screen.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scoresModel, ok := newScores.(ScoreboardModel); ok {
		m.scores = scoresModel
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.scores.IsGoingBack():
		return m.toMenu("")
	}

	return m, cmd
}

func (m SessionModel) toMenu(notice string) (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.width, m.height).WithNotice(notice)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenSetup:
		return m.setup.View()
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Run starts a local session on the current terminal.
func Run(store *storage.Store, opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(store, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
