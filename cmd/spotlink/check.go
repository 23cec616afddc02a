package main

import (
	"context"
	"fmt"
	"time"

	"spotlink/internal/config"
	"spotlink/internal/spotify"

	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and probe the Spotify token endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			fmt.Println("config: ok")

			if cfg.Telegram.BotToken == "" {
				fmt.Println("telegram: no bot token configured")
			} else {
				fmt.Println("telegram: bot token present")
			}

			if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
				fmt.Println("spotify: no credentials configured (links will fall back)")
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			tokens := spotify.NewTokenManager(spotify.TokenManagerConfig{
				ClientID:     cfg.Spotify.ClientID,
				ClientSecret: cfg.Spotify.ClientSecret,
				TokenURL:     cfg.Spotify.TokenURL,
				Logger:       logger,
			})
			if _, err := tokens.Token(ctx); err != nil {
				return fmt.Errorf("spotify token exchange failed: %w", err)
			}
			fmt.Println("spotify: token exchange ok")
			return nil
		},
	}
}
