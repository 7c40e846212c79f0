package engine

import (
	"slices"

	"github.com/vovakirdan/trivia-duel/internal/core"
)

// Phase is the coarse state of the turn state machine.
// Round completion is resolved inside a single transition and never observed.
type Phase int

const (
	PhaseSetup      Phase = iota // Waiting for players
	PhaseTurnActive              // CurrentPlayerIndex is answering
	PhaseGameOver                // Last round completed
	PhaseForfeited               // A player gave up
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseTurnActive:
		return "turn_active"
	case PhaseGameOver:
		return "game_over"
	case PhaseForfeited:
		return "forfeited"
	default:
		return "unknown"
	}
}

// PlayerInfo is what the setup screen collects for one seat.
type PlayerInfo struct {
	Name   string
	Avatar string
}

// Player is a seat's identity and tally. Name and Avatar never change once
// the game starts.
type Player struct {
	Name      string
	Avatar    string
	Score     int
	RoundsWon int
}

// PlayerGameState is the per-seat turn state.
type PlayerGameState struct {
	HasAnswered       bool
	TimeLeft          int
	CurrentQuestion   core.Question
	AnsweredQuestions []int // Question IDs in answer order
}

// GameState is the root aggregate. Presentation layers only ever see copies.
type GameState struct {
	ID                 string
	Phase              Phase
	Players            [2]Player
	CurrentPlayerIndex core.PlayerIndex
	CurrentRound       int
	TotalRounds        int
	TimePerTurn        int
	Turn               uint64 // Increases every time a turn starts
	IsGameOver         bool
	ForfeitedBy        core.PlayerIndex // NoPlayer unless forfeited
	PlayerStates       [2]PlayerGameState
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s GameState) Clone() GameState {
	c := s
	for i := range s.PlayerStates {
		c.PlayerStates[i].AnsweredQuestions = slices.Clone(s.PlayerStates[i].AnsweredQuestions)
	}
	return c
}

// ActivePlayer returns the player whose turn it is.
func (s GameState) ActivePlayer() Player {
	return s.Players[s.CurrentPlayerIndex]
}

// ActiveState returns the turn state of the player whose turn it is.
func (s GameState) ActiveState() PlayerGameState {
	return s.PlayerStates[s.CurrentPlayerIndex]
}

// placeholderState is the pre-setup state shown before players join.
func placeholderState(cfg Config) GameState {
	s := GameState{
		Phase:              PhaseSetup,
		CurrentPlayerIndex: core.Player1,
		CurrentRound:       1,
		TotalRounds:        cfg.Rounds,
		TimePerTurn:        cfg.TimePerTurn,
		ForfeitedBy:        NoPlayer,
	}
	for i := range s.Players {
		s.Players[i] = Player{Name: core.PlayerIndex(i).String()}
		s.PlayerStates[i].TimeLeft = cfg.TimePerTurn
	}
	return s
}
