package questions

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bank errors.
var (
	ErrEmptyBank   = errors.New("questions: bank has no questions")
	ErrInvalidBank = errors.New("questions: invalid bank")
)

// Kind selects the question variant a bank produces.
type Kind string

const (
	KindChoice Kind = "choice"
	KindColor  Kind = "color"
)

// YAMLBank is the on-disk layout of a question bank.
type YAMLBank struct {
	Category    string      `yaml:"category"`
	Title       string      `yaml:"title"`
	Description string      `yaml:"description,omitempty"`
	Kind        Kind        `yaml:"kind,omitempty"` // Defaults to choice
	Questions   []YAMLEntry `yaml:"questions"`
}

// YAMLEntry is one question in a bank file.
type YAMLEntry struct {
	ID          int      `yaml:"id"`
	Prompt      string   `yaml:"prompt,omitempty"` // Not used by color banks
	Answer      string   `yaml:"answer"`
	Wrong       []string `yaml:"wrong"`
	Explanation string   `yaml:"explanation,omitempty"`
	Hex         string   `yaml:"hex,omitempty"` // Color banks only
}

// Bank is a validated question bank.
type Bank struct {
	Category    string
	Title       string
	Description string
	Kind        Kind
	Entries     []YAMLEntry
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ParseBank decodes and validates a YAML bank.
func ParseBank(data []byte) (Bank, error) {
	var yb YAMLBank
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return Bank{}, fmt.Errorf("questions: yaml unmarshal: %w", err)
	}

	b := Bank{
		Category:    strings.TrimSpace(yb.Category),
		Title:       strings.TrimSpace(yb.Title),
		Description: strings.TrimSpace(yb.Description),
		Kind:        yb.Kind,
		Entries:     yb.Questions,
	}
	if b.Kind == "" {
		b.Kind = KindChoice
	}
	if err := b.Validate(); err != nil {
		return Bank{}, err
	}
	return b, nil
}

// Validate checks that every entry can be turned into a question.
func (b Bank) Validate() error {
	if b.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidBank)
	}
	if b.Kind != KindChoice && b.Kind != KindColor {
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidBank, b.Category, b.Kind)
	}
	if len(b.Entries) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyBank, b.Category)
	}

	seen := make(map[int]bool, len(b.Entries))
	for i, e := range b.Entries {
		where := fmt.Sprintf("%s question %d", b.Category, i+1)
		switch {
		case e.ID <= 0:
			return fmt.Errorf("%w: %s: id must be positive", ErrInvalidBank, where)
		case seen[e.ID]:
			return fmt.Errorf("%w: %s: duplicate id %d", ErrInvalidBank, where, e.ID)
		case strings.TrimSpace(e.Answer) == "":
			return fmt.Errorf("%w: %s: missing answer", ErrInvalidBank, where)
		case len(e.Wrong) == 0:
			return fmt.Errorf("%w: %s: needs at least one wrong option", ErrInvalidBank, where)
		case slices.ContainsFunc(e.Wrong, func(w string) bool { return sameAnswer(w, e.Answer) }):
			return fmt.Errorf("%w: %s: answer listed as wrong", ErrInvalidBank, where)
		}
		if b.Kind == KindColor {
			if !hexColor.MatchString(e.Hex) {
				return fmt.Errorf("%w: %s: bad hex color %q", ErrInvalidBank, where, e.Hex)
			}
		} else if strings.TrimSpace(e.Prompt) == "" {
			return fmt.Errorf("%w: %s: missing prompt", ErrInvalidBank, where)
		}
		seen[e.ID] = true
	}
	return nil
}
