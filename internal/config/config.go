// Package config loads the server configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no --config flag is given
const EnvVar = "QUICKMENU_CONFIG"

var (
	ErrInvalidDepth    = errors.New("max_breadcrumb_depth must be at least 1")
	ErrInvalidTopK     = errors.New("default_top_k must be at least 1")
	ErrInvalidMaxTopK  = errors.New("max_top_k must not be lower than default_top_k")
	ErrInvalidLogLevel = errors.New("log_level must be one of debug, info, warn, error")
)

// Config holds runtime settings. Empty file paths select the embedded data.
type Config struct {
	MenuFile           string `yaml:"menu_file"`
	AbbreviationsFile  string `yaml:"abbreviations_file"`
	MaxBreadcrumbDepth int    `yaml:"max_breadcrumb_depth"`
	DefaultTopK        int    `yaml:"default_top_k"`
	MaxTopK            int    `yaml:"max_top_k"`
	LogLevel           string `yaml:"log_level"`
}

// Default returns the configuration used when no file is supplied
func Default() Config {
	return Config{
		MaxBreadcrumbDepth: 8,
		DefaultTopK:        10,
		MaxTopK:            100,
		LogLevel:           "info",
	}
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the config at path. An empty path falls back to $QUICKMENU_CONFIG
// and then to Default.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.MaxBreadcrumbDepth < 1 {
		return ErrInvalidDepth
	}
	if c.DefaultTopK < 1 {
		return ErrInvalidTopK
	}
	if c.MaxTopK < c.DefaultTopK {
		return ErrInvalidMaxTopK
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel to a slog level. Empty means info.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, ErrInvalidLogLevel
	}
}

// ClampTopK resolves a requested result count: 0 selects the default and
// values above MaxTopK are capped. Negative values are returned unchanged
// so callers can reject them.
func (c Config) ClampTopK(requested int) int {
	switch {
	case requested == 0:
		return c.DefaultTopK
	case requested > c.MaxTopK:
		return c.MaxTopK
	default:
		return requested
	}
}
