// Package config assembles the runtime configuration of the API server.
// Values come from built-in defaults, then an optional YAML file, then
// environment variables, in that order of precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"newspaper/internal/common/pagination"
	"newspaper/internal/infra/db"
	"newspaper/internal/observability/tracing"
	cfgpkg "newspaper/pkg/config"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config is the full server configuration.
type Config struct {
	HTTP       HTTPConfig        `yaml:"http"`
	Log        LogConfig         `yaml:"log"`
	Store      StoreConfig       `yaml:"store"`
	Pagination pagination.Config `yaml:"pagination"`
	Search     SearchConfig      `yaml:"search"`
	Stats      StatsConfig       `yaml:"stats"`
	Tracing    tracing.Config    `yaml:"tracing"`
	Version    string            `yaml:"version"`
}

// HTTPConfig controls the listener and per-request limits.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	RequestTimeout  time.Duration `yaml:"request_timeout"` // 0 disables
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

// LogConfig selects the slog level ("debug", "info", "warn", "error").
type LogConfig struct {
	Level string `yaml:"level"`
}

// StoreConfig selects and configures the article store backend.
type StoreConfig struct {
	Driver                string              `yaml:"driver"`
	DatabaseURL           string              `yaml:"database_url"`
	Pool                  db.ConnectionConfig `yaml:"pool"`
	Redis                 db.RedisConfig      `yaml:"redis"`
	CircuitBreakerEnabled bool                `yaml:"circuit_breaker_enabled"`
}

// SearchConfig throttles the search endpoint. A RateLimit of 0 disables throttling.
type SearchConfig struct {
	RateLimit float64 `yaml:"rate_limit"` // requests per second
	Burst     int     `yaml:"burst"`
}

// StatsConfig schedules the active article gauge refresh. An empty Schedule disables it.
type StatsConfig struct {
	Schedule string        `yaml:"schedule"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Log: LogConfig{Level: "info"},
		Store: StoreConfig{
			Driver:                DriverPostgres,
			Pool:                  db.DefaultConnectionConfig(),
			Redis:                 db.RedisConfig{Addr: "localhost:6379"},
			CircuitBreakerEnabled: true,
		},
		Pagination: pagination.DefaultConfig(),
		Search:     SearchConfig{RateLimit: 20, Burst: 40},
		Stats:      StatsConfig{Schedule: "@every 1m", Timeout: 10 * time.Second},
		Tracing:    tracing.Config{ServiceName: "newspaper-api"},
		Version:    "dev",
	}
}

// Load builds the configuration. path may be empty, in which case no file is read.
// m is optional; when set, rejected fields and successful loads are recorded.
func Load(path string, m *cfgpkg.ConfigMetrics) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		if m != nil {
			var fe *FieldError
			for _, e := range unwrapAll(err) {
				if errors.As(e, &fe) {
					m.RecordValidationError(fe.Field)
				}
			}
		}
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if m != nil {
		m.RecordLoadTimestamp()
	}
	return &cfg, nil
}

func (c *Config) readFile(path string) error {
	// #nosec G304 -- path is provided by trusted source (CLI flag), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	c.HTTP.Addr = cfgpkg.GetEnvString("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.RequestTimeout = cfgpkg.GetEnvDuration("REQUEST_TIMEOUT", c.HTTP.RequestTimeout)
	c.HTTP.ShutdownTimeout = cfgpkg.GetEnvDuration("SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout)
	c.Log.Level = cfgpkg.GetEnvString("LOG_LEVEL", c.Log.Level)

	c.Store.Driver = cfgpkg.GetEnvString("STORE_DRIVER", c.Store.Driver)
	c.Store.DatabaseURL = cfgpkg.GetEnvString("DATABASE_URL", c.Store.DatabaseURL)
	c.Store.Pool.MaxOpenConns = cfgpkg.GetEnvInt("DB_MAX_OPEN_CONNS", c.Store.Pool.MaxOpenConns)
	c.Store.Pool.MaxIdleConns = cfgpkg.GetEnvInt("DB_MAX_IDLE_CONNS", c.Store.Pool.MaxIdleConns)
	c.Store.Pool.ConnMaxLifetime = cfgpkg.GetEnvDuration("DB_CONN_MAX_LIFETIME", c.Store.Pool.ConnMaxLifetime)
	c.Store.Pool.ConnMaxIdleTime = cfgpkg.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", c.Store.Pool.ConnMaxIdleTime)
	c.Store.Redis.Addr = cfgpkg.GetEnvString("REDIS_ADDR", c.Store.Redis.Addr)
	c.Store.Redis.Password = cfgpkg.GetEnvString("REDIS_PASSWORD", c.Store.Redis.Password)
	c.Store.Redis.DB = cfgpkg.GetEnvInt("REDIS_DB", c.Store.Redis.DB)
	c.Store.CircuitBreakerEnabled = cfgpkg.GetEnvBool("CIRCUIT_BREAKER_ENABLED", c.Store.CircuitBreakerEnabled)

	c.Pagination = c.Pagination.WithEnv()

	c.Search.RateLimit = cfgpkg.GetEnvFloat("SEARCH_RATE_LIMIT", c.Search.RateLimit)
	c.Search.Burst = cfgpkg.GetEnvInt("SEARCH_RATE_BURST", c.Search.Burst)

	if v, ok := os.LookupEnv("STATS_SCHEDULE"); ok {
		// 空文字で無効化できるよう LookupEnv を使う
		c.Stats.Schedule = v
	}
	c.Stats.Timeout = cfgpkg.GetEnvDuration("STATS_TIMEOUT", c.Stats.Timeout)

	c.Tracing.ServiceName = cfgpkg.GetEnvString("OTEL_SERVICE_NAME", c.Tracing.ServiceName)
	c.Tracing.ExportEndpoint = cfgpkg.GetEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", c.Tracing.ExportEndpoint)
	c.Tracing.Insecure = cfgpkg.GetEnvBool("OTEL_EXPORTER_OTLP_INSECURE", c.Tracing.Insecure)

	c.Version = cfgpkg.GetEnvString("VERSION", c.Version)
	c.Tracing.ServiceVersion = c.Version
}

// FieldError reports one rejected configuration value.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// Validate checks every field and returns all violations joined together.
func (c *Config) Validate() error {
	var errs []error
	check := func(field string, err error) {
		if err != nil {
			errs = append(errs, &FieldError{Field: field, Err: err})
		}
	}

	if c.HTTP.Addr == "" {
		check("http_addr", errors.New("must not be empty"))
	}
	check("request_timeout", cfgpkg.ValidateNonNegative(c.HTTP.RequestTimeout))
	check("shutdown_timeout", cfgpkg.ValidateRange(c.HTTP.ShutdownTimeout, time.Second, 5*time.Minute))
	check("max_body_bytes", cfgpkg.ValidatePositive(c.HTTP.MaxBodyBytes))

	check("store_driver", cfgpkg.ValidateOneOf(c.Store.Driver, DriverPostgres, DriverRedis, DriverMemory))
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			check("database_url", errors.New("is required for the postgres driver"))
		}
	case DriverRedis:
		if c.Store.Redis.Addr == "" {
			check("redis_addr", errors.New("is required for the redis driver"))
		}
	}

	check("pagination_max_limit", cfgpkg.ValidateRange(c.Pagination.MaxLimit, 1, 1000))
	check("pagination_default_limit", cfgpkg.ValidateRange(c.Pagination.DefaultLimit, 1, max(c.Pagination.MaxLimit, 1)))

	check("search_rate_limit", cfgpkg.ValidateNonNegative(c.Search.RateLimit))
	check("search_rate_burst", cfgpkg.ValidateNonNegative(c.Search.Burst))

	if c.Stats.Schedule != "" {
		check("stats_schedule", cfgpkg.ValidateCronSchedule(c.Stats.Schedule))
		check("stats_timeout", cfgpkg.ValidatePositive(c.Stats.Timeout))
	}

	return errors.Join(errs...)
}

func unwrapAll(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
