package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(Defaults()); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Port = 0
	if err := Validate(cfg); err == nil {
		t.Error("expected error for port 0")
	}
	cfg.Server.Port = 70000
	if err := Validate(cfg); err == nil {
		t.Error("expected error for port 70000")
	}
}

func TestValidate_BadWebhookPath(t *testing.T) {
	cfg := Defaults()
	cfg.Server.WebhookPath = "webhook"
	if err := Validate(cfg); err == nil {
		t.Error("expected error for path without leading slash")
	}
}

func TestValidate_HalfCredentials(t *testing.T) {
	cfg := Defaults()
	cfg.Spotify.ClientID = "id-only"
	if err := Validate(cfg); err == nil {
		t.Error("expected error when only one credential is set")
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.Level = "verbose"
	if err := Validate(cfg); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestLoad_YAMLWithEnvExpansion(t *testing.T) {
	t.Setenv("TEST_SPOTLINK_SECRET", "s3cret")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
server:
  port: 9000
  webhookPath: /hooks/telegram
spotify:
  clientId: ${TEST_SPOTLINK_CLIENT:-fallback-id}
  clientSecret: ${TEST_SPOTLINK_SECRET}
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9000 || cfg.Server.WebhookPath != "/hooks/telegram" {
		t.Errorf("server config not loaded: %+v", cfg.Server)
	}
	if cfg.Spotify.ClientID != "fallback-id" {
		t.Errorf("expected default expansion, got %q", cfg.Spotify.ClientID)
	}
	if cfg.Spotify.ClientSecret != "s3cret" {
		t.Errorf("expected env expansion, got %q", cfg.Spotify.ClientSecret)
	}
	// Unset fields keep their defaults.
	if cfg.Server.HTTPTimeoutSeconds != 15 {
		t.Errorf("expected default timeout, got %d", cfg.Server.HTTPTimeoutSeconds)
	}
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv(EnvBotToken, "bot-token")
	t.Setenv(EnvClientID, "cid")
	t.Setenv(EnvClientSecret, "csecret")
	t.Setenv(EnvPort, "9999")

	cfg := Defaults()
	ApplyEnv(cfg)
	if cfg.Telegram.BotToken != "bot-token" {
		t.Errorf("bot token not applied: %q", cfg.Telegram.BotToken)
	}
	if cfg.Spotify.ClientID != "cid" || cfg.Spotify.ClientSecret != "csecret" {
		t.Errorf("spotify credentials not applied: %+v", cfg.Spotify)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port not applied: %d", cfg.Server.Port)
	}
}

func TestExpandEnvVars_KeepsUnknown(t *testing.T) {
	in := "token: ${DEFINITELY_NOT_SET_ANYWHERE}"
	if got := ExpandEnvVars(in); got != in {
		t.Errorf("unset vars without defaults stay literal, got %q", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
