package config

import "fmt"

// DifficultyPreset scales how long each player gets to answer.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// MinTimePerTurn is the floor applied after scaling.
const MinTimePerTurn = 5

// ParseDifficulty converts a CLI flag value. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalid, s)
	}
}

// ScaleTimePerTurn adjusts the answer time for a preset.
// Easy gives half as much time again, hard halves it.
func ScaleTimePerTurn(seconds int, preset DifficultyPreset) int {
	var scaled int
	switch preset {
	case DifficultyEasy:
		scaled = seconds + seconds/2
	case DifficultyHard:
		scaled = seconds / 2
	default:
		return seconds
	}
	if scaled < MinTimePerTurn {
		scaled = MinTimePerTurn
	}
	return scaled
}
