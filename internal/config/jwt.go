package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultJWTIssuer is the issuer claim used when JWT_ISSUER is unset.
const DefaultJWTIssuer = "craftd"

// JWTConfig holds configuration for validating API bearer tokens and for
// issuing them from the CLI.
type JWTConfig struct {
	Secret          string
	Issuer          string
	ExpirationHours int
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required), JWT_ISSUER (default: craftd) and
// JWT_EXPIRATION_HOURS (default: 24).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = DefaultJWTIssuer
	}

	expirationHours := 24
	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		expirationHours = hours
	}

	config := &JWTConfig{
		Secret:          secret,
		Issuer:          issuer,
		ExpirationHours: expirationHours,
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration.
func (c *JWTConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
