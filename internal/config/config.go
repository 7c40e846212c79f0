// Package config provides YAML-based game configuration loading and
// difficulty presets for trivia duels.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/trivia-duel/internal/engine"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// TriviaConfig contains all tunable settings.
type TriviaConfig struct {
	Game       GameSettings                `yaml:"game"`
	Categories map[string]CategoryOverride `yaml:"categories"`
	UI         UISettings                  `yaml:"ui"`

	// Difficulty is chosen on the command line, not in YAML.
	Difficulty DifficultyPreset `yaml:"-"`
}

// GameSettings map onto engine.Config.
type GameSettings struct {
	Rounds       int    `yaml:"rounds"`
	TimePerTurn  int    `yaml:"time_per_turn"` // seconds
	BasePoints   int    `yaml:"base_points"`
	MaxTimeBonus int    `yaml:"max_time_bonus"`
	RoundWinner  string `yaml:"round_winner"` // cumulative | round
}

// CategoryOverride replaces game settings for one category. Zero fields are ignored.
type CategoryOverride struct {
	Rounds      int `yaml:"rounds,omitempty"`
	TimePerTurn int `yaml:"time_per_turn,omitempty"`
}

// UISettings are shared by the terminal and web front ends.
type UISettings struct {
	RevealDelayMS int      `yaml:"reveal_delay_ms"`
	Avatars       []string `yaml:"avatars"`
}

// RevealDelay is how long the answer feedback stays up before the answer is submitted.
func (c TriviaConfig) RevealDelay() time.Duration {
	return time.Duration(c.UI.RevealDelayMS) * time.Millisecond
}

// AvatarChoices returns the configured avatars, or the built-in set when empty.
func (c TriviaConfig) AvatarChoices() []string {
	if len(c.UI.Avatars) == 0 {
		return DefaultTriviaConfig().UI.Avatars
	}
	return c.UI.Avatars
}

// EngineConfig builds the engine configuration for a category, applying
// the category override and the difficulty preset.
func (c TriviaConfig) EngineConfig(category string) (engine.Config, error) {
	ec := engine.Config{
		Rounds:       c.Game.Rounds,
		TimePerTurn:  c.Game.TimePerTurn,
		BasePoints:   c.Game.BasePoints,
		MaxTimeBonus: c.Game.MaxTimeBonus,
		RoundWinner:  engine.RoundWinnerPolicy(c.Game.RoundWinner),
	}
	if o, ok := c.Categories[category]; ok {
		if o.Rounds > 0 {
			ec.Rounds = o.Rounds
		}
		if o.TimePerTurn > 0 {
			ec.TimePerTurn = o.TimePerTurn
		}
	}
	ec.TimePerTurn = ScaleTimePerTurn(ec.TimePerTurn, c.Difficulty)

	if err := ec.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("%w: category %s: %w", ErrInvalid, category, err)
	}
	return ec, nil
}

// Validate checks the game section, every override and the UI settings.
func (c TriviaConfig) Validate() error {
	if _, err := c.EngineConfig(""); err != nil {
		return err
	}
	for id := range c.Categories {
		if _, err := c.EngineConfig(id); err != nil {
			return err
		}
	}
	if c.UI.RevealDelayMS < 0 {
		return fmt.Errorf("%w: reveal_delay_ms must not be negative", ErrInvalid)
	}
	return nil
}
