// Package config loads gamefinder settings from a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load when no files are given.
const DefaultEnvFile = ".env"

// Config holds the settings shared by the web server and the terminal client.
type Config struct {
	TwitchClientID     string `env:"TWITCH_CLIENT_ID"`
	TwitchClientSecret string `env:"TWITCH_CLIENT_SECRET"`
	TwitchTokenURL     string `env:"TWITCH_TOKEN_URL" envDefault:"https://id.twitch.tv/oauth2/token"`
	IGDBBaseURL        string `env:"IGDB_BASE_URL" envDefault:"https://api.igdb.com/v4"`

	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"300ms"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE" envDefault:"gamefinder-tui.log"`
}

// ConfigurationError lists required variables that are unset or empty.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "config: missing required environment variables: " + strings.Join(e.Missing, ", ")
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the given dotenv files (DefaultEnvFile if none), then parses and
// validates the environment. Missing files are skipped. Variables already set
// in the environment take precedence over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports a *ConfigurationError if the Twitch credentials are missing
// and rejects non-positive durations.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.TwitchClientID) == "" {
		missing = append(missing, "TWITCH_CLIENT_ID")
	}
	if strings.TrimSpace(c.TwitchClientSecret) == "" {
		missing = append(missing, "TWITCH_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("config: SEARCH_DEBOUNCE must not be negative, got %s", c.SearchDebounce)
	}

	return nil
}
