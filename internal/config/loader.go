package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name looked up in the user and local config directories.
const FileName = "trivia.yaml"

// Load loads the trivia configuration.
// Search order: customPath -> ~/.trivia/config.yaml -> ./configs/trivia.yaml -> embedded default.
// Files only need to set the fields they change; everything else keeps its default.
// It also reports which file was used ("embedded" for the built-in one).
func Load(customPath string) (TriviaConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TriviaConfig{}, "", fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return TriviaConfig{}, "", fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then the local configs directory.
	// Unreadable or broken files there are skipped.
	for _, path := range []string{userConfigPath(), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultTriviaYAML)
	if err != nil {
		return DefaultTriviaConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// parse overlays data on the defaults and validates the result.
func parse(data []byte) (TriviaConfig, error) {
	cfg := DefaultTriviaConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TriviaConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TriviaConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".trivia", "config.yaml")
}
