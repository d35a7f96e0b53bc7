package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dredding8/malibu-ui-private/config"
)

// Version is set at build time.
var Version = "0.1.0"

// errCheckFailed marks a command whose check ran but did not pass. It flows
// back through RunE so deferred cleanup (notably the browser session close)
// runs before main translates it into a non-zero exit.
var errCheckFailed = errors.New("check failed")

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "malibu",
	Short: "Browser-driven UI audit and page-mapping toolkit",
	Long: `Malibu inspects a running web console with a real browser and with
static HTML snapshots.

Commands:
  map       Build the application map from HTML snapshots
  audit     Run the full UX audit against a live page
  headers   Validate the history table's column headers
  baseline  Capture the visual baseline screenshot set
  serve     Run the HTTP API server`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		initLogger(cfg.Log)
	},
}

func main() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		// Check verdicts print their own report; only real errors need echoing.
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
