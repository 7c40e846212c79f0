// Package all imports every trivia category so that it registers itself.
package all

import (
	// Import categories to register them
	_ "github.com/vovakirdan/trivia-duel/internal/games/animals"
	_ "github.com/vovakirdan/trivia-duel/internal/games/colors"
	_ "github.com/vovakirdan/trivia-duel/internal/games/geography"
	_ "github.com/vovakirdan/trivia-duel/internal/games/math"
	_ "github.com/vovakirdan/trivia-duel/internal/games/quiz"
	_ "github.com/vovakirdan/trivia-duel/internal/games/science"
)
