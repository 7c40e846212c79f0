// trivia is a two-player trivia duel for the terminal, SSH and the browser.
//
// Usage:
//
//	trivia list                - List available categories
//	trivia play <category>     - Duel in one category
//	trivia menu                - Pick a category interactively
//	trivia serve               - Start SSH server for remote play
//	trivia web                 - Serve the browser version
//	trivia config              - Print the default trivia.yaml
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible question order
//	--config <path>       - Use a custom trivia.yaml
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs of terminal sessions to a file
//
// Every flag can also be set through the environment, e.g. TRIVIA_LOG_LEVEL=debug.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vovakirdan/trivia-duel/internal/config"

	// Import categories to register them
	_ "github.com/vovakirdan/trivia-duel/internal/games/all"
)

const releaseVersion = "0.1.0"

var (
	// Global flags
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "trivia",
	Short:   "Trivia Duel - Two players, one screen, one clock",
	Version: releaseVersion,
	Long: `Trivia Duel is a turn-based quiz for two players sharing one screen.
Each round both players answer one question against the clock; fast
correct answers earn a time bonus.

Available commands:
  list     - Show all available categories
  play     - Duel in a specific category
  menu     - Interactive category picker
  serve    - Start SSH server for remote play
  web      - Serve the game to a browser
  config   - Print the default configuration

Examples:
  trivia list
  trivia play geography
  trivia play math --difficulty hard
  trivia menu --seed 42
  trivia serve --ssh :2222
  trivia web --addr :8080`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	fs := rootCmd.PersistentFlags()
	fs.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	fs.StringVar(&flagConfig, "config", "", "Path to custom trivia config YAML")
	fs.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	fs.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&flagLogFile, "log-file", "", "Log file for terminal sessions (default: discard)")

	rootCmd.SetVersionTemplate("trivia v{{.Version}}\n")
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(configCmd)

	// Flags are parsed by the time this runs, so Changed tells command line
	// values apart from defaults the environment may replace.
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		bindEnv(cmd.Flags())
	}
}

// bindEnv lets TRIVIA_<FLAG> set any flag not given on the command line.
func bindEnv(fs *pflag.FlagSet) {
	v := viper.New()
	v.SetEnvPrefix("TRIVIA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

// loadTrivia loads the YAML config and applies the difficulty preset.
func loadTrivia(logger *log.Logger) (config.TriviaConfig, error) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.TriviaConfig{}, err
	}
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return config.TriviaConfig{}, err
	}
	cfg.Difficulty = preset
	if err := cfg.Validate(); err != nil {
		return config.TriviaConfig{}, err
	}
	logger.Debug("config loaded", "source", source, "difficulty", preset)
	return cfg, nil
}

// newLogger builds the logger for a command. Terminal sessions must not write
// to the screen, so they log to --log-file or nowhere.
func newLogger(prefix string, terminal bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var (
		out     io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if terminal {
		out = io.Discard
		if flagLogFile != "" {
			f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("cannot open log file: %w", err)
			}
			out = f
			closeFn = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}
