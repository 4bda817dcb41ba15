package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"go-simpler.org/env"

	"streamNotify/internal/domain"
)

type Config struct {
	ClientID     string `env:"Client_ID"`
	ClientSecret string `env:"Client_Secret"`

	LogLevel     string `env:"LOG_LEVEL" default:"info"`
	LogFormat    string `env:"LOG_FORMAT" default:"text"`
	LogFile      string `env:"LOG_FILE" default:"notification.log"`
	SettingsPath string `env:"STREAMNOTIFY_SETTINGS"`
}

// Load reads the environment (and a .env file if present). Missing or empty
// credentials fail with domain.ErrConfig.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("%w: load environment: %v", domain.ErrConfig, err)
	}

	cfg.ClientID = strings.TrimSpace(cfg.ClientID)
	cfg.ClientSecret = strings.TrimSpace(cfg.ClientSecret)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	// Checked in a fixed order so the error names the first missing key.
	required := []struct{ name, value string }{
		{"Client_ID", cfg.ClientID},
		{"Client_Secret", cfg.ClientSecret},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrConfig, r.name)
		}
	}
	return nil
}

func (c *Config) Credentials() domain.Credentials {
	return domain.Credentials{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
	}
}
