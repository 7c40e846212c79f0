package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trivia-duel/internal/core"
	"github.com/vovakirdan/trivia-duel/internal/engine"
	"github.com/vovakirdan/trivia-duel/internal/registry"
	"github.com/vovakirdan/trivia-duel/internal/storage"
)

// GameOptions configures one game screen.
type GameOptions struct {
	Engine      engine.Config
	Players     [2]engine.PlayerInfo
	RevealDelay time.Duration
	Seed        int64 // 0 = time based
	Logger      *log.Logger
}

// pendingAnswer is a selection whose feedback panel is still showing.
// Correctness and bonus are fixed at selection time.
type pendingAnswer struct {
	turn     uint64
	player   core.PlayerIndex
	option   string
	correct  bool
	bonus    int
	question core.Question
}

// GameModel is the Bubble Tea model for one hot-seat game.
// It is the only writer of its engine.Game.
type GameModel struct {
	category  registry.CategoryInfo
	game      *engine.Game
	store     *storage.Store
	logger    *log.Logger
	players   [2]engine.PlayerInfo
	reveal    time.Duration
	keyMapper *KeyMapper

	state   engine.GameState
	cursor  int
	pending *pendingAnswer
	message string
	tickSeq int // Only the latest scheduled tick is honoured
	started time.Time
	saved   bool

	width      int
	height     int
	quitting   bool
	backToMenu bool
	wantScores bool
}

// NewGameModel creates the question source for category, seats both players
// and starts the first turn.
func NewGameModel(category registry.Category, store *storage.Store, opts GameOptions) (GameModel, error) {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	source, err := category.NewSource(opts.Seed)
	if err != nil {
		return GameModel{}, fmt.Errorf("tui: %s: %w", category.ID(), err)
	}
	game, err := engine.NewGame(opts.Engine, source, logger.With("category", category.ID()))
	if err != nil {
		return GameModel{}, err
	}
	if err := game.Initialize(opts.Players[0], opts.Players[1]); err != nil {
		return GameModel{}, err
	}

	return GameModel{
		category: registry.CategoryInfo{
			ID:          category.ID(),
			Title:       category.Title(),
			Description: category.Description(),
		},
		game:      game,
		store:     store,
		logger:    logger,
		players:   opts.Players,
		reveal:    opts.RevealDelay,
		keyMapper: NewKeyMapper(),
		state:     game.State(),
		started:   time.Now(),
		width:     80,
		height:    24,
	}, nil
}

// Init starts the clock for the first turn.
func (m GameModel) Init() tea.Cmd {
	return m.tickFor(m.state.Turn, m.tickSeq)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case RevealDoneMsg:
		return m.handleReveal(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.keyMapper.MapKey(msg)
	if in.Action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state.IsGameOver {
		switch in.Action {
		case core.ActionBack:
			m.backToMenu = true
		case core.ActionConfirm:
			m.wantScores = true
		case core.ActionRestart:
			return m.rematch()
		}
		return m, nil
	}

	// The answering player already made a choice; wait for the reveal.
	if m.pending != nil {
		return m, nil
	}

	options := m.options()
	switch in.Action {
	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case core.ActionDown:
		if m.cursor < len(options)-1 {
			m.cursor++
		}
	case core.ActionSelect:
		if in.Option < len(options) {
			m.cursor = in.Option
			return m.choose()
		}
	case core.ActionConfirm:
		return m.choose()
	case core.ActionForfeit:
		return m.forfeit()
	}

	return m, nil
}

// choose locks in the option under the cursor and starts the feedback panel.
func (m GameModel) choose() (tea.Model, tea.Cmd) {
	ps := m.state.ActiveState()
	q := ps.CurrentQuestion
	options := m.options()
	if q == nil || m.cursor >= len(options) {
		return m, nil
	}

	option := options[m.cursor]
	p := &pendingAnswer{
		turn:     m.state.Turn,
		player:   m.state.CurrentPlayerIndex,
		option:   option,
		correct:  q.Check(option),
		question: q,
	}
	if p.correct {
		cfg := m.game.Config()
		p.bonus = engine.TimeBonus(ps.TimeLeft, cfg.TimePerTurn, cfg.MaxTimeBonus)
	}
	m.pending = p
	m.message = ""
	return m, revealCmd(p.turn, m.reveal)
}

// handleReveal submits the pending answer with its turn token.
func (m GameModel) handleReveal(msg RevealDoneMsg) (tea.Model, tea.Cmd) {
	p := m.pending
	if p == nil || p.turn != msg.Turn {
		return m, nil
	}
	m.pending = nil

	out, err := m.game.Submit(engine.Answer{
		Player:    p.player,
		Correct:   p.correct,
		TimeBonus: p.bonus,
		Turn:      p.turn,
	})
	m.state = m.game.State()
	if err != nil {
		m.logger.Debug("answer not applied", "player", p.player, "error", err)
		if errors.Is(err, engine.ErrStaleTurn) || errors.Is(err, engine.ErrAlreadyAnswered) {
			m.message = "That answer came too late."
		} else {
			m.message = err.Error()
		}
		cmd := m.resume()
		return m, cmd
	}

	m.describe(out)
	m.cursor = 0
	m.finish()
	cmd := m.resume()
	return m, cmd
}

// handleTick advances the active player's clock.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.tickSeq || msg.Turn != m.state.Turn || m.game.Phase() != engine.PhaseTurnActive {
		return m, nil
	}
	res, err := m.game.Tick()
	m.state = m.game.State()
	if err != nil {
		m.logger.Error("tick failed", "error", err)
		m.message = err.Error()
		return m, nil
	}
	if res.TimedOut {
		// A selection still on the feedback panel lost the race; its turn is gone.
		m.pending = nil
		m.message = fmt.Sprintf("Time's up for %s!", m.state.Players[res.Player].Name)
		m.describeRound(res.Outcome)
		m.cursor = 0
		m.finish()
	}
	cmd := m.resume()
	return m, cmd
}

// forfeit ends the game in favour of the player who is not answering.
func (m GameModel) forfeit() (tea.Model, tea.Cmd) {
	p := m.state.CurrentPlayerIndex
	if err := m.game.Forfeit(p); err != nil {
		m.message = err.Error()
		return m, nil
	}
	m.state = m.game.State()
	m.message = fmt.Sprintf("%s forfeited.", m.state.Players[p].Name)
	m.finish()
	return m, nil
}

// rematch starts a new game with the same players and question source.
func (m GameModel) rematch() (tea.Model, tea.Cmd) {
	if err := m.game.Initialize(m.players[0], m.players[1]); err != nil {
		m.message = err.Error()
		return m, nil
	}
	m.state = m.game.State()
	m.pending = nil
	m.cursor = 0
	m.message = ""
	m.saved = false
	m.started = time.Now()
	cmd := m.resume()
	return m, cmd
}

// resume schedules the next tick for the current turn, invalidating any
// tick already in flight.
func (m *GameModel) resume() tea.Cmd {
	m.tickSeq++
	if m.game.Phase() != engine.PhaseTurnActive {
		return nil
	}
	return m.tickFor(m.state.Turn, m.tickSeq)
}

func (m GameModel) tickFor(turn uint64, seq int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Turn: turn, At: t, seq: seq}
	})
}

// describe turns an outcome into the status line.
func (m *GameModel) describe(out engine.Outcome) {
	name := m.state.Players[out.Player].Name
	if out.Correct {
		m.message = fmt.Sprintf("%s scored %d points.", name, out.Points)
	} else {
		m.message = fmt.Sprintf("%s scored nothing.", name)
	}
	m.describeRound(out)
}

func (m *GameModel) describeRound(out engine.Outcome) {
	if !out.RoundComplete {
		return
	}
	if out.RoundWinner == engine.NoPlayer {
		m.message += " Round tied."
		return
	}
	m.message += fmt.Sprintf(" Round to %s.", m.state.Players[out.RoundWinner].Name)
}

// finish records a game that just ended in the session match log, once.
func (m *GameModel) finish() {
	if !m.state.IsGameOver || m.saved {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}
	rec := storage.NewMatchRecord(m.category.ID, m.state, m.started, time.Now())
	if _, err := m.store.SaveMatch(rec); err != nil {
		m.logger.Warn("could not record match", "game", m.state.ID, "error", err)
	}
}

func (m GameModel) options() []string {
	q := m.state.ActiveState().CurrentQuestion
	if q == nil {
		return nil
	}
	return q.Options()
}

// View renders the game screen.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := fmt.Sprintf("TRIVIA DUEL · %s · Round %d/%d",
		m.category.Title, m.state.CurrentRound, m.state.TotalRounds)
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(header), m.width))
	b.WriteString("\n\n")

	panelWidth := 24
	players := lipgloss.JoinHorizontal(lipgloss.Top,
		renderPlayer(m.state, core.Player1, panelWidth),
		"   ",
		renderPlayer(m.state, core.Player2, panelWidth),
	)
	b.WriteString(centerBlock(players, m.width))
	b.WriteString("\n\n")

	var body string
	switch {
	case m.state.IsGameOver:
		body = m.renderResult()
	case m.pending != nil:
		body = m.renderReveal()
	default:
		body = m.renderQuestion()
	}
	b.WriteString(centerBlock(body, m.width))
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.message, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.controls()), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m GameModel) renderQuestion() string {
	q := m.state.ActiveState().CurrentQuestion
	if q == nil {
		return ""
	}

	var b strings.Builder
	p := m.state.CurrentPlayerIndex
	who := lipgloss.NewStyle().Bold(true).Foreground(seatColors[p]).
		Render(m.state.Players[p].Name + "'s question")
	b.WriteString(who)
	b.WriteString("\n\n")
	b.WriteString(q.Prompt())
	b.WriteString("\n")

	if c, ok := q.(interface{ Hex() string }); ok {
		b.WriteString("\n")
		b.WriteString(swatch(c.Hex(), 20, 4))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for i, opt := range q.Options() {
		line := fmt.Sprintf(" %d. %s ", i+1, opt)
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return boxStyle.Width(56).Render(strings.TrimRight(b.String(), "\n"))
}

func (m GameModel) renderReveal() string {
	p := m.pending
	var b strings.Builder
	if p.correct {
		b.WriteString(correctStyle.Render(fmt.Sprintf("Correct! +%d", m.game.Config().BasePoints+p.bonus)))
	} else {
		b.WriteString(wrongStyle.Render("Wrong."))
		b.WriteString(fmt.Sprintf(" The answer is %s.", p.question.Answer()))
	}
	if exp := p.question.Explanation(); exp != "" {
		b.WriteString("\n\n")
		b.WriteString(exp)
	}
	return boxStyle.Width(56).Render(b.String())
}

func (m GameModel) renderResult() string {
	res := engine.ResultOf(m.state)
	var headline string
	switch {
	case res.Draw():
		headline = "It's a draw!"
	case res.Winner.Valid():
		headline = m.state.Players[res.Winner].Name + " wins!"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(headline))
	if res.Reason == engine.EndReasonForfeit {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(m.state.Players[m.state.ForfeitedBy].Name + " forfeited"))
	}
	b.WriteString("\n\n")
	for i, p := range m.state.Players {
		b.WriteString(fmt.Sprintf("%-16s %4d pts  %d rounds\n", p.Name, res.Scores[i], res.RoundsWon[i]))
	}
	return boxStyle.Width(40).Render(strings.TrimRight(b.String(), "\n"))
}

func (m GameModel) controls() string {
	switch {
	case m.state.IsGameOver:
		return "Enter: Match log  |  R: Rematch  |  B: Menu  |  Q: Quit"
	case m.pending != nil:
		return "..."
	default:
		return "1-4: Answer  |  Up/Down + Enter: Choose  |  F: Forfeit  |  Q: Quit"
	}
}

// State returns a copy of the game state.
func (m GameModel) State() engine.GameState {
	return m.state.Clone()
}

// Revealing reports whether a selection is waiting to be submitted.
func (m GameModel) Revealing() bool {
	return m.pending != nil
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// WantsScoreboard returns true if user asked for the match log.
func (m GameModel) WantsScoreboard() bool {
	return m.wantScores
}
