package config

import (
	_ "embed"
)

//go:embed defaults/trivia.yaml
var defaultTriviaYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultTriviaYAML...)
}

// DefaultTriviaConfig returns the default configuration.
func DefaultTriviaConfig() TriviaConfig {
	return TriviaConfig{
		Game: GameSettings{
			Rounds:       5,
			TimePerTurn:  20,
			BasePoints:   10,
			MaxTimeBonus: 10,
			RoundWinner:  "cumulative",
		},
		Categories: map[string]CategoryOverride{},
		UI: UISettings{
			RevealDelayMS: 2000,
			Avatars:       []string{"🦊", "🦉", "🐙", "🐢", "🐼", "🦁", "🐸", "🐧"},
		},
		Difficulty: DifficultyNormal,
	}
}
