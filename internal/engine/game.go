// Package engine implements the turn-based two-player game state machine
// shared by every trivia category.
//
// Game is the pure state machine: it holds no goroutines and is driven by
// whoever owns it, one call at a time. Engine wraps a Game in a single-writer
// loop that also owns the per-second turn timer.
package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/trivia-duel/internal/core"
)

// Answer is one submission for the active player.
type Answer struct {
	Player    core.PlayerIndex
	Correct   bool
	TimeBonus int

	// Turn, when non-zero, must equal GameState.Turn at the time the answer
	// is applied. It lets a delayed submission detect that its turn is gone.
	Turn uint64
}

// Outcome reports what an applied answer did.
type Outcome struct {
	Player        core.PlayerIndex
	Correct       bool
	Points        int
	TimedOut      bool
	RoundComplete bool
	RoundWinner   core.PlayerIndex // NoPlayer on a tie or when the round continues
	GameOver      bool
}

// TickResult reports what one timer tick did.
type TickResult struct {
	Player   core.PlayerIndex // NoPlayer when the timer is not running
	TimeLeft int
	TimedOut bool
	Outcome  Outcome // Set when TimedOut
}

// Game is the turn state machine. It is not safe for concurrent use.
type Game struct {
	cfg     Config
	source  core.QuestionSource
	logger  *log.Logger
	state   GameState
	turnSeq uint64

	// Scores at the start of the current round, for RoundWinnerRound.
	roundStart [2]int
}

// NewGame creates a game in the setup phase.
func NewGame(cfg Config, source core.QuestionSource, logger *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("%w: question source is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Game{
		cfg:    cfg,
		source: source,
		logger: logger,
		state:  placeholderState(cfg),
	}, nil
}

// Config returns the configuration the game was created with.
func (g *Game) Config() Config {
	return g.cfg
}

// State returns a deep copy of the current state.
func (g *Game) State() GameState {
	return g.state.Clone()
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.state.Phase
}

// TimerRunning reports whether the active player's clock should be ticking.
func (g *Game) TimerRunning() bool {
	return g.state.Phase == PhaseTurnActive
}

// Result returns the standings for the current state.
func (g *Game) Result() Result {
	return ResultOf(g.state)
}

// Initialize seats both players, requests one question per seat and starts
// player 1's turn. Calling it again discards the previous game entirely.
func (g *Game) Initialize(p1, p2 PlayerInfo) error {
	var questions [2]core.Question
	for i := range questions {
		q, err := g.fetch(core.PlayerIndex(i))
		if err != nil {
			return err
		}
		questions[i] = q
	}

	s := placeholderState(g.cfg)
	s.ID = uuid.NewString()
	s.Phase = PhaseTurnActive
	for i, info := range [2]PlayerInfo{p1, p2} {
		s.Players[i] = Player{Name: info.Name, Avatar: info.Avatar}
		s.PlayerStates[i].CurrentQuestion = questions[i]
	}
	g.state = s
	g.roundStart = [2]int{}
	g.startTurn()

	g.logger.Info("game started",
		"game", s.ID,
		"player1", p1.Name,
		"player2", p2.Name,
		"rounds", g.cfg.Rounds,
		"time_per_turn", g.cfg.TimePerTurn,
	)
	return nil
}

// HandleAnswer submits an answer without a turn token.
func (g *Game) HandleAnswer(player core.PlayerIndex, correct bool, timeBonus int) (Outcome, error) {
	return g.Submit(Answer{Player: player, Correct: correct, TimeBonus: timeBonus})
}

// Submit validates and applies an answer for the active player.
// Rejected submissions leave the state untouched.
func (g *Game) Submit(a Answer) (Outcome, error) {
	return g.submit(a, false)
}

func (g *Game) submit(a Answer, timedOut bool) (Outcome, error) {
	if err := g.check(a); err != nil {
		g.logger.Debug("answer rejected",
			"game", g.state.ID,
			"player", a.Player,
			"turn", a.Turn,
			"error", err,
		)
		return Outcome{}, err
	}

	p := a.Player
	completesRound := g.state.PlayerStates[p.Other()].HasAnswered
	lastRound := g.state.CurrentRound >= g.state.TotalRounds

	// The next round's questions are fetched before anything changes, so a
	// broken source cannot leave a half-applied answer behind.
	var next [2]core.Question
	if completesRound && !lastRound {
		for i := range next {
			q, err := g.fetch(core.PlayerIndex(i))
			if err != nil {
				return Outcome{}, err
			}
			next[i] = q
		}
	}

	out := Outcome{
		Player:      p,
		Correct:     a.Correct,
		TimedOut:    timedOut,
		RoundWinner: NoPlayer,
	}
	if a.Correct {
		out.Points = g.cfg.BasePoints + a.TimeBonus
	}

	g.state.Players[p].Score += out.Points
	ps := &g.state.PlayerStates[p]
	ps.HasAnswered = true
	if ps.CurrentQuestion != nil {
		ps.AnsweredQuestions = append(ps.AnsweredQuestions, ps.CurrentQuestion.ID())
	}

	g.logger.Debug("answer applied",
		"game", g.state.ID,
		"round", g.state.CurrentRound,
		"player", p,
		"correct", a.Correct,
		"points", out.Points,
		"timed_out", timedOut,
	)

	g.advance(next, &out)
	return out, nil
}

// check enforces the submission contract in a fixed order so that a late
// duplicate is reported as a duplicate rather than as out-of-turn.
func (g *Game) check(a Answer) error {
	switch g.state.Phase {
	case PhaseSetup:
		return ErrNotStarted
	case PhaseGameOver, PhaseForfeited:
		return ErrGameOver
	}
	if !a.Player.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, int(a.Player))
	}
	if a.Turn != 0 && a.Turn != g.state.Turn {
		return ErrStaleTurn
	}
	if g.state.PlayerStates[a.Player].HasAnswered {
		return ErrAlreadyAnswered
	}
	if a.Player != g.state.CurrentPlayerIndex {
		return ErrNotYourTurn
	}
	if a.TimeBonus < 0 {
		return ErrInvalidTimeBonus
	}
	return nil
}

// advance moves to the other player, the next round or game over.
func (g *Game) advance(next [2]core.Question, out *Outcome) {
	s := &g.state
	if !s.PlayerStates[0].HasAnswered || !s.PlayerStates[1].HasAnswered {
		s.CurrentPlayerIndex = s.CurrentPlayerIndex.Other()
		g.startTurn()
		return
	}

	out.RoundComplete = true
	out.RoundWinner = g.roundWinner()
	if out.RoundWinner != NoPlayer {
		s.Players[out.RoundWinner].RoundsWon++
	}

	g.logger.Info("round complete",
		"game", s.ID,
		"round", s.CurrentRound,
		"winner", out.RoundWinner,
		"score1", s.Players[0].Score,
		"score2", s.Players[1].Score,
	)

	if s.CurrentRound >= s.TotalRounds {
		s.IsGameOver = true
		s.Phase = PhaseGameOver
		out.GameOver = true
		g.logger.Info("game over", "game", s.ID, "winner", ResultOf(*s).Winner)
		return
	}

	s.CurrentRound++
	s.CurrentPlayerIndex = core.Player1
	for i := range s.PlayerStates {
		s.PlayerStates[i].HasAnswered = false
		s.PlayerStates[i].TimeLeft = g.cfg.TimePerTurn
		s.PlayerStates[i].CurrentQuestion = next[i]
	}
	g.roundStart = [2]int{s.Players[0].Score, s.Players[1].Score}
	g.startTurn()
}

func (g *Game) roundWinner() core.PlayerIndex {
	a, b := g.state.Players[0].Score, g.state.Players[1].Score
	if g.cfg.RoundWinner == RoundWinnerRound {
		a -= g.roundStart[0]
		b -= g.roundStart[1]
	}
	return higher(a, b)
}

// startTurn gives the active player a full clock and a fresh turn token.
func (g *Game) startTurn() {
	g.turnSeq++
	g.state.Turn = g.turnSeq
	g.state.PlayerStates[g.state.CurrentPlayerIndex].TimeLeft = g.cfg.TimePerTurn
}

// Tick advances the active player's clock by one second. When the clock
// reaches zero an unanswered player is submitted as wrong with no bonus.
// Ticks outside an active turn are ignored.
func (g *Game) Tick() (TickResult, error) {
	if g.state.Phase != PhaseTurnActive {
		return TickResult{Player: NoPlayer}, nil
	}

	p := g.state.CurrentPlayerIndex
	ps := &g.state.PlayerStates[p]
	res := TickResult{Player: p}
	if ps.HasAnswered {
		res.TimeLeft = ps.TimeLeft
		return res, nil
	}

	if ps.TimeLeft > 0 {
		ps.TimeLeft--
	}
	res.TimeLeft = ps.TimeLeft
	if ps.TimeLeft > 0 {
		return res, nil
	}

	g.logger.Debug("time's up", "game", g.state.ID, "player", p, "round", g.state.CurrentRound)
	out, err := g.submit(Answer{Player: p}, true)
	if err != nil {
		return res, err
	}
	res.TimedOut = true
	res.Outcome = out
	return res, nil
}

// Forfeit ends the game immediately. Scores are left as they are.
func (g *Game) Forfeit(player core.PlayerIndex) error {
	switch g.state.Phase {
	case PhaseSetup:
		return ErrNotStarted
	case PhaseGameOver, PhaseForfeited:
		return ErrGameOver
	}
	if !player.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, int(player))
	}

	g.state.IsGameOver = true
	g.state.Phase = PhaseForfeited
	g.state.ForfeitedBy = player

	g.logger.Info("game forfeited",
		"game", g.state.ID,
		"player", player,
		"round", g.state.CurrentRound,
	)
	return nil
}

// fetch asks the source for a question and rejects malformed ones.
func (g *Game) fetch(p core.PlayerIndex) (core.Question, error) {
	q, err := g.source.Next(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBadQuestion, p, err)
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s: nil question", ErrBadQuestion, p)
	}
	if q.ID() == 0 {
		return nil, fmt.Errorf("%w: %s: question has no id", ErrBadQuestion, p)
	}
	return q, nil
}
