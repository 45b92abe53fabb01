// Package pagination provides offset pagination parameters shared by the
// HTTP handlers and the article service.
package pagination

import (
	cfgpkg "newspaper/pkg/config"
)

// Config holds pagination configuration settings.
// These values can be loaded from environment variables or config files.
type Config struct {
	DefaultLimit int `yaml:"default_limit"` // Default items per request (typically 10)
	MaxLimit     int `yaml:"max_limit"`     // Maximum allowed items per request (typically 100)
}

// DefaultConfig returns the default pagination configuration.
// Default values: limit=10, max=100
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 10,
		MaxLimit:     100,
	}
}

// WithEnv overrides c with environment variables and returns the result.
// Supported environment variables:
//   - PAGINATION_DEFAULT_LIMIT: Default items per request
//   - PAGINATION_MAX_LIMIT: Maximum items per request
//
// Unset or malformed variables keep the value already in c.
func (c Config) WithEnv() Config {
	c.DefaultLimit = cfgpkg.GetEnvInt("PAGINATION_DEFAULT_LIMIT", c.DefaultLimit)
	c.MaxLimit = cfgpkg.GetEnvInt("PAGINATION_MAX_LIMIT", c.MaxLimit)
	return c
}

// Normalize replaces non-positive settings with the defaults.
func (c Config) Normalize() Config {
	d := DefaultConfig()
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = d.DefaultLimit
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = d.MaxLimit
	}
	if c.DefaultLimit > c.MaxLimit {
		c.DefaultLimit = c.MaxLimit
	}
	return c
}
