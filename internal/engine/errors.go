package engine

import "errors"

// Contract violations. Every one of them leaves the game state untouched.
var (
	ErrInvalidConfig    = errors.New("engine: invalid config")
	ErrNotStarted       = errors.New("engine: game not started")
	ErrGameOver         = errors.New("engine: game is over")
	ErrInvalidPlayer    = errors.New("engine: invalid player index")
	ErrNotYourTurn      = errors.New("engine: not this player's turn")
	ErrAlreadyAnswered  = errors.New("engine: player already answered this round")
	ErrStaleTurn        = errors.New("engine: answer belongs to an earlier turn")
	ErrInvalidTimeBonus = errors.New("engine: time bonus must not be negative")
	ErrBadQuestion      = errors.New("engine: question source returned an invalid question")
	ErrClosed           = errors.New("engine: closed")
)
