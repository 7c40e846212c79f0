package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trivia-duel/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Prints the built-in trivia.yaml. Save it as ~/.trivia/config.yaml or
./configs/trivia.yaml and edit the values you want to change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	},
}
