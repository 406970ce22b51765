package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the antighoster service.
// Environment variables are parsed from the ANTIGHOSTER_ prefix,
// e.g. ANTIGHOSTER_BEEPER_BASE_URL, ANTIGHOSTER_HTTP_PORT.
type Config struct {
	// Beeper Desktop local API
	BeeperBaseURL     string `envconfig:"BEEPER_BASE_URL" default:"http://localhost:23373"`
	BeeperAccessToken string `envconfig:"BEEPER_ACCESS_TOKEN" default:""`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"5000"`

	// Upstream fetch behavior
	PageLimit       int           `envconfig:"PAGE_LIMIT" default:"50"`
	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"90s"`
	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"30s"`
	MediaTimeout    time.Duration `envconfig:"MEDIA_TIMEOUT" default:"10s"`

	// Settings persistence
	SettingsPath string `envconfig:"SETTINGS_PATH" default:"settings.json"`
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if c.BeeperBaseURL == "" {
		return fmt.Errorf("beeper base URL must not be empty")
	}
	if c.PageLimit <= 0 {
		return fmt.Errorf("page limit must be positive, got %d", c.PageLimit)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must not be negative, got %s", c.CacheTTL)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("ANTIGHOSTER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("beeper_base_url", cfg.BeeperBaseURL).
		Bool("token_present", cfg.BeeperAccessToken != "").
		Int("port", cfg.HTTPPort).
		Int("page_limit", cfg.PageLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Str("settings_path", cfg.SettingsPath).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config pointed at a fake upstream.
func NewForTesting(baseURL string) *Config {
	return &Config{
		BeeperBaseURL:   baseURL,
		HTTPPort:        5000,
		PageLimit:       50,
		CacheTTL:        90 * time.Second,
		UpstreamTimeout: 30 * time.Second,
		MediaTimeout:    10 * time.Second,
		SettingsPath:    "settings.json",
	}
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
