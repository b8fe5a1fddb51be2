// Package config reads the roster front end's settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the front end's runtime settings.
type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	RemoteURL      string        `env:"ROSTER_REMOTE_URL" envDefault:"http://localhost:8000"`
	RequestTimeout time.Duration `env:"ROSTER_REQUEST_TIMEOUT" envDefault:"10s"`
	LogLevel       string        `env:"ROSTER_LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string      `env:"ROSTER_ALLOWED_ORIGINS" envSeparator:","`
	SessionTTL     time.Duration `env:"ROSTER_SESSION_TTL" envDefault:"30m"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot.
func (c Config) Validate() error {
	u, err := url.Parse(c.RemoteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("ROSTER_REMOTE_URL %q must be an absolute URL", c.RemoteURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("ROSTER_REQUEST_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("ROSTER_SESSION_TTL must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel onto a slog level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("ROSTER_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
