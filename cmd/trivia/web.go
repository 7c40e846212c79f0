package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trivia-duel/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the game to a browser",
	Long: `Start an HTTP server with the browser version of the game.

Every browser tab runs its own duel; both players share the tab. The page
shows a QR code so a second device can open the same category.

Endpoints:
  /                      - Category list
  /play/<category>       - Game page
  /play/<category>/ws    - Game websocket
  /qr                    - QR code for this site
  /healthz, /version     - Health check and version

Examples:
  trivia web                     # Listen on :8080
  trivia web --addr 127.0.0.1:9000
  TRIVIA_ADDR=:9000 trivia web`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	logger, _, err := newLogger("trivia-web", false)
	if err != nil {
		return err
	}
	trivia, err := loadTrivia(logger)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg := web.DefaultConfig()
	cfg.Addr = flagWebAddr
	cfg.Trivia = trivia
	cfg.Seed = flagSeed
	cfg.Version = releaseVersion
	cfg.Logger = logger

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving trivia on http://%s/\n", displayAddr(flagWebAddr))
	fmt.Println("Press Ctrl+C to stop")
	return web.New(cfg).ListenAndServe(ctx)
}

// displayAddr turns ":8080" into "localhost:8080" for the startup banner.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
