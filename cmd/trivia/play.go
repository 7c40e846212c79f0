package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/trivia-duel/internal/core"
	"github.com/vovakirdan/trivia-duel/internal/platform/tui"
	"github.com/vovakirdan/trivia-duel/internal/registry"
	"github.com/vovakirdan/trivia-duel/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <category>",
	Short: "Duel in one category",
	Long: `Start a duel in the specified category. Both players share this
terminal and take turns; the active player's clock is always running.

Controls:
  1-4          - Answer with that option
  Up/Down      - Move the cursor
  Enter/Space  - Answer with the highlighted option
  F            - Forfeit for the active player
  R            - Rematch (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Half as much time again per turn
  normal - Time per turn from the config
  hard   - Half the time per turn

Examples:
  trivia play geography
  trivia play math --difficulty hard
  trivia play colors --config ./my-trivia.yaml
  trivia play science --seed 42`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	id := args[0]

	// Check if the category exists
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown category %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'trivia list' to see available categories.")
		os.Exit(1)
	}

	runTerminal(id)
}

// runTerminal plays on the current terminal, starting at the menu when
// category is empty.
func runTerminal(category string) {
	logger, closeLog, err := newLogger("trivia", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	trivia, err := loadTrivia(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open the match log
	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open match log", "error", err)
		store = nil // The game still works without it
	}

	runErr := tui.Run(store, tui.Options{
		Trivia: trivia,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
		Logger:   logger,
		Category: category,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
