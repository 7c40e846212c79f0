// Package math registers the generated arithmetic category.
// Questions get harder each round.
package math

import (
	"github.com/vovakirdan/trivia-duel/internal/questions"
	"github.com/vovakirdan/trivia-duel/internal/registry"
)

// ID is the registry identifier of the category.
const ID = "math"

func init() {
	registry.Register(ID, func() registry.Category {
		return questions.NewMathCategory(ID, "Math", "Mental arithmetic that gets harder every round", nil)
	})
}
