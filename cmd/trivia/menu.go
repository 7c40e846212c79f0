package main

import (
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a category picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a category.
After a duel you can rematch, check the match log or return to the menu.
The match log lasts until you quit.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select category
  Tab          - Match log
  Q            - Quit

Examples:
  trivia menu
  trivia menu --difficulty easy
  trivia menu --log-file trivia.log --log-level debug`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runTerminal("")
	},
}
