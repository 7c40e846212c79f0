package questions

import (
	"github.com/vovakirdan/trivia-duel/internal/core"
)

// BankCategory is a category backed by a question bank.
type BankCategory struct {
	bank Bank
}

// NewBankCategory parses a YAML bank into a category.
func NewBankCategory(data []byte) (*BankCategory, error) {
	b, err := ParseBank(data)
	if err != nil {
		return nil, err
	}
	return &BankCategory{bank: b}, nil
}

// MustBankCategory is NewBankCategory for embedded banks. It panics on a
// broken bank so the problem shows up at startup.
func MustBankCategory(data []byte) *BankCategory {
	c, err := NewBankCategory(data)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *BankCategory) ID() string { return c.bank.Category }
func (c *BankCategory) Title() string { return c.bank.Title }
func (c *BankCategory) Description() string { return c.bank.Description }

// Size returns the number of questions in the bank.
func (c *BankCategory) Size() int { return len(c.bank.Entries) }

// NewSource returns a fresh no-repeat source for one game.
func (c *BankCategory) NewSource(seed int64) (core.QuestionSource, error) {
	src, err := NewBankSource(c.bank, seed)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// MathCategory generates arithmetic questions.
type MathCategory struct {
	id, title, description string
	levels                 []MathLevel
}

// NewMathCategory creates a generated arithmetic category.
func NewMathCategory(id, title, description string, levels []MathLevel) *MathCategory {
	return &MathCategory{id: id, title: title, description: description, levels: levels}
}

func (c *MathCategory) ID() string { return c.id }
func (c *MathCategory) Title() string { return c.title }
func (c *MathCategory) Description() string { return c.description }

// NewSource returns a generator whose difficulty follows the round number.
func (c *MathCategory) NewSource(seed int64) (core.QuestionSource, error) {
	return NewMathSource(c.id, c.levels, seed), nil
}
