package engine

import "fmt"

// Config is fixed for the lifetime of a game.
type Config struct {
	Rounds       int               // Rounds per game, >= 1
	TimePerTurn  int               // Seconds each player gets per turn, >= 1
	BasePoints   int               // Points for a correct answer before the time bonus
	MaxTimeBonus int               // Bonus for answering with the full clock left
	RoundWinner  RoundWinnerPolicy // How round winners are decided
}

// DefaultConfig returns the settings the trivia categories ship with.
func DefaultConfig() Config {
	return Config{
		Rounds:       5,
		TimePerTurn:  20,
		BasePoints:   10,
		MaxTimeBonus: 10,
		RoundWinner:  RoundWinnerCumulative,
	}
}

// Validate checks the config and fills in the round-winner policy when empty.
func (c *Config) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalidConfig, c.Rounds)
	}
	if c.TimePerTurn < 1 {
		return fmt.Errorf("%w: time per turn must be positive, got %d", ErrInvalidConfig, c.TimePerTurn)
	}
	if c.BasePoints < 0 || c.MaxTimeBonus < 0 {
		return fmt.Errorf("%w: points must not be negative", ErrInvalidConfig)
	}
	if c.RoundWinner == "" {
		c.RoundWinner = RoundWinnerCumulative
	}
	if _, err := ParseRoundWinnerPolicy(string(c.RoundWinner)); err != nil {
		return err
	}
	return nil
}
