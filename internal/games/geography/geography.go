// Package geography registers the geography trivia category.
package geography

import (
	_ "embed"

	"github.com/vovakirdan/trivia-duel/internal/questions"
	"github.com/vovakirdan/trivia-duel/internal/registry"
)

//go:embed bank.yaml
var bank []byte

func init() {
	registry.Register("geography", func() registry.Category {
		return questions.MustBankCategory(bank)
	})
}
