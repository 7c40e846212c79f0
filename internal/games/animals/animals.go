// Package animals registers the animals trivia category.
package animals

import (
	_ "embed"

	"github.com/vovakirdan/trivia-duel/internal/questions"
	"github.com/vovakirdan/trivia-duel/internal/registry"
)

//go:embed bank.yaml
var bank []byte

func init() {
	registry.Register("animals", func() registry.Category {
		return questions.MustBankCategory(bank)
	})
}
