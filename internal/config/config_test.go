package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/trivia-duel/internal/engine"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(defaultTriviaYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	def := DefaultTriviaConfig()
	if cfg.Game != def.Game {
		t.Errorf("embedded game section %+v, hardcoded %+v", cfg.Game, def.Game)
	}
	if cfg.UI.RevealDelayMS != def.UI.RevealDelayMS {
		t.Errorf("reveal delay %d, want %d", cfg.UI.RevealDelayMS, def.UI.RevealDelayMS)
	}
	if cfg.RevealDelay() != 2*time.Second {
		t.Errorf("RevealDelay() = %v", cfg.RevealDelay())
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults.
	cfg, from, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if from != "embedded" || cfg.Game.Rounds != 5 {
		t.Errorf("got rounds=%d from %q, want embedded defaults", cfg.Game.Rounds, from)
	}

	// Local ./configs/trivia.yaml.
	writeFile(t, filepath.Join(work, "configs", FileName), "game:\n  rounds: 7\n")
	cfg, from, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Rounds != 7 || from != filepath.Join("configs", FileName) {
		t.Errorf("got rounds=%d from %q, want local file", cfg.Game.Rounds, from)
	}
	if cfg.Game.TimePerTurn != 20 {
		t.Errorf("unset field lost its default: time_per_turn=%d", cfg.Game.TimePerTurn)
	}

	// The user file wins over the local one.
	userPath := filepath.Join(home, ".trivia", "config.yaml")
	writeFile(t, userPath, "game:\n  rounds: 3\n")
	cfg, from, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Rounds != 3 || from != userPath {
		t.Errorf("got rounds=%d from %q, want user file", cfg.Game.Rounds, from)
	}

	// A broken user file is skipped.
	writeFile(t, userPath, "game: [")
	cfg, _, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Rounds != 7 {
		t.Errorf("rounds=%d, want fallback to local file", cfg.Game.Rounds)
	}

	// An explicit path wins and must be valid.
	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "game:\n  rounds: 9\n")
	cfg, from, err = Load(custom)
	if err != nil {
		t.Fatalf("Load(custom): %v", err)
	}
	if cfg.Game.Rounds != 9 || from != custom {
		t.Errorf("got rounds=%d from %q, want custom", cfg.Game.Rounds, from)
	}

	if _, _, err := Load(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}
	writeFile(t, custom, "game:\n  rounds: 0\n")
	if _, _, err := Load(custom); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load(zero rounds) error = %v, want ErrInvalid", err)
	}
}

func TestEngineConfigOverrides(t *testing.T) {
	cfg := DefaultTriviaConfig()
	cfg.Categories["colors"] = CategoryOverride{Rounds: 6, TimePerTurn: 10}
	cfg.Categories["math"] = CategoryOverride{TimePerTurn: 15}

	tests := []struct {
		category   string
		difficulty DifficultyPreset
		rounds     int
		time       int
	}{
		{"science", DifficultyNormal, 5, 20},
		{"colors", DifficultyNormal, 6, 10},
		{"math", DifficultyNormal, 5, 15},
		{"science", DifficultyEasy, 5, 30},
		{"science", DifficultyHard, 5, 10},
		{"colors", DifficultyHard, 6, MinTimePerTurn},
	}
	for _, tt := range tests {
		cfg.Difficulty = tt.difficulty
		ec, err := cfg.EngineConfig(tt.category)
		if err != nil {
			t.Fatalf("EngineConfig(%s): %v", tt.category, err)
		}
		if ec.Rounds != tt.rounds || ec.TimePerTurn != tt.time {
			t.Errorf("%s/%s: rounds=%d time=%d, want %d/%d",
				tt.category, tt.difficulty, ec.Rounds, ec.TimePerTurn, tt.rounds, tt.time)
		}
		if ec.RoundWinner != engine.RoundWinnerCumulative {
			t.Errorf("policy = %q", ec.RoundWinner)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TriviaConfig)
	}{
		{"zero rounds", func(c *TriviaConfig) { c.Game.Rounds = 0 }},
		{"bad policy", func(c *TriviaConfig) { c.Game.RoundWinner = "sometimes" }},
		{"negative reveal", func(c *TriviaConfig) { c.UI.RevealDelayMS = -1 }},
		{"negative bonus", func(c *TriviaConfig) { c.Game.MaxTimeBonus = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTriviaConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		ok   bool
	}{
		{"", DifficultyNormal, true},
		{"easy", DifficultyEasy, true},
		{"hard", DifficultyHard, true},
		{"fixed", "", false},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestAvatarChoicesFallback(t *testing.T) {
	cfg := DefaultTriviaConfig()
	cfg.UI.Avatars = nil
	if len(cfg.AvatarChoices()) == 0 {
		t.Error("AvatarChoices() empty")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultYAMLIsACopy(t *testing.T) {
	data := DefaultYAML()
	if _, err := parse(data); err != nil {
		t.Fatalf("DefaultYAML does not parse: %v", err)
	}
	data[0] = '!'
	if DefaultYAML()[0] == '!' {
		t.Error("DefaultYAML shares its backing array")
	}
}
