// Package config loads tool configuration from a YAML file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tool's settings. Credentials are never stored here; the
// provider layer reads API keys straight from the environment.
type Config struct {
	// DefaultModel is used when no model is passed on the command line.
	DefaultModel string `yaml:"default_model"`

	// FallbackModels override the built-in fallback chain when set.
	FallbackModels []string `yaml:"fallback_models"`

	// RequestTimeoutSeconds bounds each individual model call.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	// DatabasePath is the SQLite file holding generated posts.
	DatabasePath string `yaml:"database_path"`

	// BaseURLs override vendor API endpoints, keyed by vendor name.
	BaseURLs map[string]string `yaml:"base_urls"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DefaultModel:          "gpt-4o-mini",
		RequestTimeoutSeconds: 60,
		DatabasePath:          defaultDatabasePath(),
	}
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vidscribe.db"
	}
	return filepath.Join(home, ".vidscribe", "posts.db")
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vidscribe.yaml"
	}
	return filepath.Join(home, ".vidscribe", "config.yaml")
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file is fine; defaults plus environment apply.
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.Getenv)
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = 60
	}
	return cfg, nil
}

// applyEnv layers VIDSCRIBE_* environment variables over the file values.
// Base URLs are file-only; they exist for local proxies and tests, not for
// per-run switching.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("VIDSCRIBE_DEFAULT_MODEL"); v != "" {
		c.DefaultModel = v
	}
	if v := getenv("VIDSCRIBE_FALLBACK_MODELS"); v != "" {
		parts := strings.Split(v, ",")
		models := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				models = append(models, p)
			}
		}
		c.FallbackModels = models
	}
	if v := getenv("VIDSCRIBE_DB_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := getenv("VIDSCRIBE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RequestTimeoutSeconds = n
		}
	}
}

// Timeout returns the per-call timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
