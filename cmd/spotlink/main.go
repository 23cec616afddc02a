package main

import (
	"log/slog"
	"os"

	"spotlink/internal/config"

	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	logger     *slog.Logger
	configPath string // overridable via --config flag
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:     "spotlink",
		Short:   "Spotlink: Telegram webhook responder for Spotify links",
		Long:    "Spotlink receives Telegram webhook updates, detects Spotify links in messages, and replies with a metadata preview.",
		Version: version,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (optional; environment variables suffice)")

	root.AddCommand(serveCmd())
	root.AddCommand(checkCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the --config file when given, otherwise starts from
// defaults; environment overrides apply either way.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	cfg := config.Defaults()
	config.ApplyEnv(cfg)
	return cfg, nil
}
