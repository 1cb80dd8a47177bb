package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := DefaultConfig()
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))

	dashboardLimit := getEnvInt("RATE_LIMIT_DASHBOARD_LIMIT", 0)
	if dashboardLimit > 0 {
		for i := range cfg.EndpointConfigs {
			if cfg.EndpointConfigs[i].Path == "/api/dashboard" {
				cfg.EndpointConfigs[i].Limit = dashboardLimit
			}
		}
	}
	return cfg
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
// The composed dashboard runs every query for a user at once, so it gets the
// tightest limit; the other read endpoints fall under the default limit.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/dashboard", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/charts/", Method: "GET", Limit: 300, Window: time.Minute, Burst: 30},
	}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
