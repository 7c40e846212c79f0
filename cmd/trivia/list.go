package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trivia-duel/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available categories",
	Long:  `Shows a list of all trivia categories registered in the game.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	categories := registry.List()

	if len(categories) == 0 {
		fmt.Println("No categories available.")
		return
	}

	fmt.Println("Available categories:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, c := range categories {
		maxIDLen = max(maxIDLen, len(c.ID))
		maxTitleLen = max(maxTitleLen, len(c.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")

	for _, c := range categories {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, c.ID, maxTitleLen, c.Title, c.Description)
	}

	fmt.Println()
	fmt.Println("Run 'trivia play <id>' to start a duel.")
}
