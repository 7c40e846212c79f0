// Package science registers the science trivia category.
package science

import (
	_ "embed"

	"github.com/vovakirdan/trivia-duel/internal/questions"
	"github.com/vovakirdan/trivia-duel/internal/registry"
)

//go:embed bank.yaml
var bank []byte

func init() {
	registry.Register("science", func() registry.Category {
		return questions.MustBankCategory(bank)
	})
}
