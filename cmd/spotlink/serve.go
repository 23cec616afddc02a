package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spotlink/internal/config"
	"spotlink/internal/notify"
	"spotlink/internal/pipeline"
	"spotlink/internal/shortlink"
	"spotlink/internal/spotify"
	"spotlink/internal/webhook"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Logging.SlogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := spotify.SharedHTTPClient(time.Duration(cfg.Server.HTTPTimeoutSeconds) * time.Second)

	var pipe *pipeline.Pipeline
	if cfg.Telegram.BotToken == "" {
		logger.Error("no bot token configured; every webhook request will fail with a server error")
	} else {
		notifier, err := notify.NewTelegram(cfg.Telegram.BotToken, logger)
		if err != nil {
			return err
		}

		tokens := spotify.NewTokenManager(spotify.TokenManagerConfig{
			ClientID:     cfg.Spotify.ClientID,
			ClientSecret: cfg.Spotify.ClientSecret,
			TokenURL:     cfg.Spotify.TokenURL,
			Client:       httpClient,
			Logger:       logger,
		})
		if cfg.Spotify.ClientID == "" {
			logger.Warn("no spotify credentials configured; every link will degrade to a fallback notice")
		}

		pipe = pipeline.New(pipeline.Config{
			Resolver: shortlink.New(httpClient, logger),
			Fetcher: spotify.NewClient(spotify.ClientConfig{
				APIBase: cfg.Spotify.APIBase,
				Tokens:  tokens,
				Client:  httpClient,
				Logger:  logger,
			}),
			Notifier: notifier,
			Logger:   logger,
		})
	}

	server := webhook.NewServer(webhook.Config{
		Port:     cfg.Server.Port,
		Path:     cfg.Server.WebhookPath,
		Pipeline: pipe,
		Logger:   logger,
	})
	return server.Start(ctx)
}
