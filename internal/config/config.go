// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "VIGILE_"

// DefaultAPIURL is used whenever VIGILE_API_URL is empty or rejected.
const DefaultAPIURL = "https://api.vigile.dev"

// Config holds the application configuration
type Config struct {
	APIURL         string        `env:"API_URL" envDefault:"https://api.vigile.dev"`
	APIKey         string        `env:"API_KEY" envDefault:""`
	WebURL         string        `env:"WEB_URL" envDefault:"https://vigile.dev"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	HTTPAddress    string        `env:"HTTP_ADDRESS" envDefault:""`
	MetricsAddress string        `env:"METRICS_ADDRESS" envDefault:""`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
}

// NewConfig reads an optional .env file and then the VIGILE_* environment.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return Parse()
}

// Parse reads the VIGILE_* environment without touching .env.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix: EnvPrefix,
	}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("invalid %sHTTP_TIMEOUT %q: must be positive", EnvPrefix, cfg.HTTPTimeout)
	}
	return &cfg, nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid %sLOG_LEVEL %q: %w", EnvPrefix, c.LogLevel, err)
	}
	return level, nil
}

// ResolveAPIBase validates a configured API URL and reduces it to its origin.
// HTTPS is required except for localhost and 127.0.0.1. A rejected value
// yields DefaultAPIURL together with an error describing the problem; an
// empty value yields DefaultAPIURL with no error.
func ResolveAPIBase(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultAPIURL, nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return DefaultAPIURL, fmt.Errorf("invalid %sAPI_URL: %s", EnvPrefix, raw)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	local := host == "localhost" || host == "127.0.0.1"
	switch {
	case scheme == "https":
	case scheme == "http" && local:
	case local:
		return DefaultAPIURL, fmt.Errorf("invalid %sAPI_URL scheme %q", EnvPrefix, u.Scheme)
	default:
		return DefaultAPIURL, fmt.Errorf("%sAPI_URL must use HTTPS, got %s:", EnvPrefix, u.Scheme)
	}

	return scheme + "://" + strings.ToLower(u.Host), nil
}
