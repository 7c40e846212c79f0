package engine

import (
	"fmt"
	"math"

	"github.com/vovakirdan/trivia-duel/internal/core"
)

// NoPlayer marks the absence of a winner (tie or draw).
const NoPlayer core.PlayerIndex = -1

// RoundWinnerPolicy decides who is credited with a round.
type RoundWinnerPolicy string

const (
	// RoundWinnerCumulative compares running totals at the round boundary.
	// An early lead keeps winning rounds until it is overtaken.
	RoundWinnerCumulative RoundWinnerPolicy = "cumulative"

	// RoundWinnerRound compares only the points scored during the round.
	RoundWinnerRound RoundWinnerPolicy = "round"
)

// ParseRoundWinnerPolicy validates a policy name from configuration.
func ParseRoundWinnerPolicy(s string) (RoundWinnerPolicy, error) {
	switch p := RoundWinnerPolicy(s); p {
	case RoundWinnerCumulative, RoundWinnerRound:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown round winner policy %q", ErrInvalidConfig, s)
	}
}

// TimeBonus converts the seconds left on the clock into bonus points,
// rounding half away from zero: round(timeLeft / timePerTurn * maxBonus).
func TimeBonus(timeLeft, timePerTurn, maxBonus int) int {
	if timePerTurn <= 0 || timeLeft <= 0 || maxBonus <= 0 {
		return 0
	}
	if timeLeft > timePerTurn {
		timeLeft = timePerTurn
	}
	return int(math.Round(float64(timeLeft) / float64(timePerTurn) * float64(maxBonus)))
}

// higher returns the seat with the strictly greater value, or NoPlayer on a tie.
func higher(a, b int) core.PlayerIndex {
	switch {
	case a > b:
		return core.Player1
	case b > a:
		return core.Player2
	default:
		return NoPlayer
	}
}

// EndReason describes why a game finished.
type EndReason int

const (
	EndReasonNone      EndReason = iota // Game still running or not started
	EndReasonCompleted                  // Last round completed
	EndReasonForfeit                    // A player forfeited
)

func (r EndReason) String() string {
	switch r {
	case EndReasonNone:
		return "In progress"
	case EndReasonCompleted:
		return "Game completed"
	case EndReasonForfeit:
		return "Forfeit"
	default:
		return "Unknown"
	}
}

// Result holds the final standings of a game.
type Result struct {
	Reason    EndReason
	Winner    core.PlayerIndex // NoPlayer on a draw or while running
	Scores    [2]int
	RoundsWon [2]int
}

// Draw reports whether a finished game ended level.
func (r Result) Draw() bool {
	return r.Reason != EndReasonNone && r.Winner == NoPlayer
}

// ResultOf derives the standings from a state snapshot.
// A completed game is won on total score. A forfeited game is always won by
// the player who did not forfeit, whatever the scores.
func ResultOf(s GameState) Result {
	r := Result{Winner: NoPlayer}
	for i := range s.Players {
		r.Scores[i] = s.Players[i].Score
		r.RoundsWon[i] = s.Players[i].RoundsWon
	}

	switch s.Phase {
	case PhaseForfeited:
		r.Reason = EndReasonForfeit
		if s.ForfeitedBy.Valid() {
			r.Winner = s.ForfeitedBy.Other()
		}
	case PhaseGameOver:
		r.Reason = EndReasonCompleted
		r.Winner = higher(r.Scores[0], r.Scores[1])
	}
	return r
}
