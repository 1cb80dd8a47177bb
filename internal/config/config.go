// Package config provides configuration loading and validation for the craftd CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MaxRecentEventLimit caps how many career events a dashboard may request.
const MaxRecentEventLimit = 100

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables,
// or CLI flags.
type Config struct {
	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Portfolio   string `json:"portfolio,omitempty"`    // Path to a portfolio JSON file for offline runs

	// Server
	Port           int      `json:"port,omitempty"`            // HTTP listen port
	AllowedOrigins []string `json:"allowed_origins,omitempty"` // CORS origins; empty allows all

	// Dashboard
	UserID           string `json:"user_id,omitempty"`            // User UUID whose records are read
	RecentEventLimit int    `json:"recent_event_limit,omitempty"` // Career events returned by the dashboard

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Port:             8080,
		RecentEventLimit: 10,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration values that can be supplied through the
// environment (typically via a .env file loaded at startup).
func FromEnv() Config {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		UserID:      os.Getenv("CRAFTD_USER_ID"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if limit, err := strconv.Atoi(os.Getenv("CRAFTD_RECENT_EVENT_LIMIT")); err == nil {
		cfg.RecentEventLimit = limit
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.DatabaseURL != "" && c.Portfolio != "" {
		return fmt.Errorf("config error: 'database_url' and 'portfolio' are mutually exclusive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.RecentEventLimit < 0 || c.RecentEventLimit > MaxRecentEventLimit {
		return fmt.Errorf("config error: 'recent_event_limit' must be between 0 and %d, got %d",
			MaxRecentEventLimit, c.RecentEventLimit)
	}

	if c.UserID != "" {
		if _, err := uuid.Parse(c.UserID); err != nil {
			return fmt.Errorf("config error: 'user_id' is not a valid UUID: %s", c.UserID)
		}
	}

	if c.Portfolio != "" {
		if _, err := os.Stat(c.Portfolio); os.IsNotExist(err) {
			return fmt.Errorf("config error: portfolio file not found: %s", c.Portfolio)
		}
	}

	return nil
}

// ParsedUserID returns the configured user as a UUID.
func (c *Config) ParsedUserID() (uuid.UUID, error) {
	if c.UserID == "" {
		return uuid.Nil, fmt.Errorf("user_id is required")
	}
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user_id %q: %w", c.UserID, err)
	}
	return id, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer config file values, environment values and built-in
// defaults beneath CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Portfolio == "" {
		result.Portfolio = defaults.Portfolio
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RecentEventLimit == 0 {
		result.RecentEventLimit = defaults.RecentEventLimit
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
