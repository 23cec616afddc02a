// Package config loads the responder's configuration from a YAML file and
// the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables honored as direct overrides. The YAML file may also
// reference any variable through ${VAR} / ${VAR:-default} expansion.
const (
	EnvBotToken     = "TELEGRAM_BOT_TOKEN"
	EnvClientID     = "SPOTIFY_CLIENT_ID"
	EnvClientSecret = "SPOTIFY_CLIENT_SECRET"
	EnvPort         = "SPOTLINK_PORT"
	EnvWebhookPath  = "SPOTLINK_WEBHOOK_PATH"
	EnvLogLevel     = "SPOTLINK_LOG_LEVEL"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Telegram TelegramConfig `yaml:"telegram"`
	Spotify  SpotifyConfig  `yaml:"spotify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the webhook HTTP listener.
type ServerConfig struct {
	Port               int    `yaml:"port"`
	WebhookPath        string `yaml:"webhookPath"`
	HTTPTimeoutSeconds int    `yaml:"httpTimeoutSeconds"` // timeout for all outbound calls
}

// TelegramConfig holds the bot credential. An empty token leaves the server
// running but failing every request with a server error.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
}

// SpotifyConfig holds the metadata-provider credentials. The endpoint bases
// are overridable so tests can point at stub servers.
type SpotifyConfig struct {
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	TokenURL     string `yaml:"tokenUrl,omitempty"`
	APIBase      string `yaml:"apiBase,omitempty"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel maps the configured level string onto slog's levels.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Defaults returns the built-in configuration; credentials come from the
// environment.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               8080,
			WebhookPath:        "/webhook",
			HTTPTimeoutSeconds: 15,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config file, expands ${VAR} references in its body, and
// applies environment overrides on top.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Defaults()
	if err := yaml.Unmarshal([]byte(ExpandEnvVars(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	ApplyEnv(cfg)
	return cfg, nil
}

// ApplyEnv overrides config fields from well-known environment variables.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvBotToken); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv(EnvClientID); v != "" {
		cfg.Spotify.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		cfg.Spotify.ClientSecret = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv(EnvWebhookPath); v != "" {
		cfg.Server.WebhookPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns in config strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-(.*?))?\}`)

// ExpandEnvVars replaces ${VAR} with the environment variable value.
// Supports default values: ${VAR:-default} uses "default" when VAR is unset
// or empty.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultVal := ""
		hasDefault := len(groups) >= 3 && groups[2] != ""
		if hasDefault {
			defaultVal = groups[2]
		}

		val, exists := os.LookupEnv(varName)
		if !exists || val == "" {
			if hasDefault {
				return defaultVal
			}
			return match
		}
		return val
	})
}

// Validate checks that the config has valid values.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}
	if !strings.HasPrefix(cfg.Server.WebhookPath, "/") {
		errs = append(errs, "server.webhookPath must begin with /")
	}
	if cfg.Server.HTTPTimeoutSeconds < 1 {
		errs = append(errs, "server.httpTimeoutSeconds must be >= 1")
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		errs = append(errs, "logging.level must be one of: debug, info, warn, error")
	}
	if (cfg.Spotify.ClientID == "") != (cfg.Spotify.ClientSecret == "") {
		errs = append(errs, "spotify.clientId and spotify.clientSecret must be set together")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
