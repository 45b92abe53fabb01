// Package config provides environment variable helpers and validators shared
// by the application configuration loaders.
//
// Every GetEnv* helper falls back to the supplied default when the variable is
// unset or empty. Malformed values also fall back, with a warning logged, so a
// typo in one variable never prevents the process from starting.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the value of key, or defaultValue if it is not set.
func GetEnvString(key, defaultValue string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return defaultValue
}

// GetEnvInt returns the value of key parsed as an integer.
//
// Example:
//
//	limit := GetEnvInt("PAGINATION_MAX_LIMIT", 100)
func GetEnvInt(key string, defaultValue int) int {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		warnInvalid(key, v, strconv.Itoa(defaultValue), err)
		return defaultValue
	}
	return n
}

// GetEnvFloat returns the value of key parsed as a float64.
func GetEnvFloat(key string, defaultValue float64) float64 {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		warnInvalid(key, v, strconv.FormatFloat(defaultValue, 'g', -1, 64), err)
		return defaultValue
	}
	return f
}

// GetEnvBool returns the value of key parsed by strconv.ParseBool.
// Accepted values: 1, t, T, TRUE, true, True, 0, f, F, FALSE, false, False.
func GetEnvBool(key string, defaultValue bool) bool {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		warnInvalid(key, v, strconv.FormatBool(defaultValue), err)
		return defaultValue
	}
	return b
}

// GetEnvDuration returns the value of key parsed by time.ParseDuration ("30s", "1h30m").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		warnInvalid(key, v, defaultValue.String(), err)
		return defaultValue
	}
	return d
}

// GetEnvStringList splits a comma-separated variable, trimming whitespace and
// dropping empty items. An empty result yields defaultValue.
func GetEnvStringList(key string, defaultValue []string) []string {
	v, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func lookup(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func warnInvalid(key, value, fallback string, err error) {
	slog.Warn("invalid value for environment variable, using default",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("default", fallback),
		slog.String("error", err.Error()))
}
