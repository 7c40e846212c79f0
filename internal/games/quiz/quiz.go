// Package quiz registers the quiz trivia category.
package quiz

import (
	_ "embed"

	"github.com/vovakirdan/trivia-duel/internal/questions"
	"github.com/vovakirdan/trivia-duel/internal/registry"
)

//go:embed bank.yaml
var bank []byte

func init() {
	registry.Register("quiz", func() registry.Category {
		return questions.MustBankCategory(bank)
	})
}
