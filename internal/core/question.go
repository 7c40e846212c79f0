// Package core provides fundamental types shared by the game engine, the
// question sources and the presentation layers. It has no UI dependencies so
// that game logic stays pure and testable.
package core

import "fmt"

// PlayerIndex identifies one of the two seats in a duel.
type PlayerIndex int

// Seats of a duel. Player1 always takes the first turn of a round.
const (
	Player1 PlayerIndex = 0
	Player2 PlayerIndex = 1
)

// Other returns the opposite seat.
func (p PlayerIndex) Other() PlayerIndex {
	return 1 - p
}

// Valid reports whether p is one of the two seats.
func (p PlayerIndex) Valid() bool {
	return p == Player1 || p == Player2
}

// String returns a human-readable name for the seat.
func (p PlayerIndex) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return fmt.Sprintf("Player(%d)", int(p))
	}
}

// Question is the capability every trivia category implements.
// The engine only needs the ID; presentation layers use the rest to render
// the question and decide correctness.
type Question interface {
	// ID identifies the question within its category. Never zero.
	ID() int

	// Category returns the registry ID of the category that produced it.
	Category() string

	// Prompt is the text shown to the player.
	Prompt() string

	// Options lists the candidate answers in display order.
	Options() []string

	// Check reports whether the candidate answer is correct.
	Check(answer string) bool

	// Answer returns the correct answer as displayed in Options.
	Answer() string

	// Explanation is shown after the player answers. May be empty.
	Explanation() string
}

// QuestionSource supplies the next question for a seat.
// It owns the no-repeat policy; the engine calls it once per player at game
// start and once per player at the start of every later round.
type QuestionSource interface {
	Next(player PlayerIndex) (Question, error)
}

// SourceFunc adapts a plain function to QuestionSource.
type SourceFunc func(player PlayerIndex) (Question, error)

// Next calls f(player).
func (f SourceFunc) Next(player PlayerIndex) (Question, error) {
	return f(player)
}
