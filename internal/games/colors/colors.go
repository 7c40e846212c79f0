// Package colors registers the colors trivia category.
package colors

import (
	_ "embed"

	"github.com/vovakirdan/trivia-duel/internal/questions"
	"github.com/vovakirdan/trivia-duel/internal/registry"
)

//go:embed bank.yaml
var bank []byte

func init() {
	registry.Register("colors", func() registry.Category {
		return questions.MustBankCategory(bank)
	})
}
