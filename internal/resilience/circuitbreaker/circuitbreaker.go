// Package circuitbreaker provides circuit breaker implementations for article store calls.
// It uses the github.com/sony/gobreaker library to prevent cascading failures.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"newspaper/internal/observability/metrics"
)

// ErrOpen is returned by Execute while the circuit rejects calls, both in the
// open state and when the half-open probe quota is used up.
var ErrOpen = errors.New("circuit breaker is open")

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name labels logs and the article_store_circuit_breaker_state metric
	Name string

	// MaxRequests is the number of probe calls allowed while half-open
	MaxRequests uint32

	// Interval is the closed-state window after which counts are cleared; 0 never clears
	Interval time.Duration

	// Timeout is how long the circuit stays open before probing again
	Timeout time.Duration

	// FailureThreshold is the failure ratio (0..1] that trips the circuit
	// once MinRequests calls have been counted in the current window
	FailureThreshold float64
	MinRequests      uint32

	// ConsecutiveFailures trips the circuit regardless of ratio; 0 disables
	ConsecutiveFailures uint32

	// IsSuccessful classifies a returned error; nil treats only nil errors as success
	IsSuccessful func(err error) bool
}

// DefaultConfig returns a general purpose configuration.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

func (c Config) readyToTrip(counts gobreaker.Counts) bool {
	if c.ConsecutiveFailures > 0 && counts.ConsecutiveFailures >= c.ConsecutiveFailures {
		return true
	}
	if counts.Requests == 0 || counts.Requests < c.MinRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= c.FailureThreshold
}

// CircuitBreaker guards calls to one dependency.
type CircuitBreaker struct {
	*gobreaker.CircuitBreaker
}

// New creates a circuit breaker and publishes its initial closed state.
func New(cfg Config) *CircuitBreaker {
	metrics.SetCircuitBreakerState(cfg.Name, int(gobreaker.StateClosed))
	return &CircuitBreaker{gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  cfg.MaxRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.Timeout,
		ReadyToTrip:  cfg.readyToTrip,
		IsSuccessful: cfg.IsSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})}
}

// Execute runs fn unless the circuit is rejecting calls, in which case it
// returns ErrOpen without calling fn.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	_, err := cb.CircuitBreaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrOpen
	}
	return err
}

// IsOpen reports whether the circuit is fully open.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == gobreaker.StateOpen
}
