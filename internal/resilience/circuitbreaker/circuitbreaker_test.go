package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper/internal/observability/metrics"
)

var errBoom = errors.New("boom")

func fail() error { return errBoom }
func ok() error { return nil }

func TestNew_PublishesClosedState(t *testing.T) {
	cb := New(DefaultConfig("cb-new"))

	assert.Equal(t, "cb-new", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.False(t, cb.IsOpen())
	assert.Equal(t, float64(gobreaker.StateClosed),
		testutil.ToFloat64(metrics.StoreCircuitBreakerState.WithLabelValues("cb-new")))
}

func TestExecute_PassesResultThrough(t *testing.T) {
	cb := New(DefaultConfig("cb-pass"))

	called := false
	require.NoError(t, cb.Execute(func() error { called = true; return nil }))
	assert.True(t, called)

	assert.ErrorIs(t, cb.Execute(fail), errBoom)
}

func TestExecute_TripsOnFailureRatio(t *testing.T) {
	cfg := DefaultConfig("cb-ratio")
	cfg.Timeout = time.Hour
	cb := New(cfg)

	// 2/5 は閾値 0.6 未満
	for _, fn := range []func() error{ok, ok, ok, fail, fail} {
		_ = cb.Execute(fn)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())

	// 4/7 ≈ 0.57 → closed, 5/8 = 0.625 → open
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	_ = cb.Execute(fail)
	assert.True(t, cb.IsOpen())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called, "open circuit must not call through")
	assert.Equal(t, float64(gobreaker.StateOpen),
		testutil.ToFloat64(metrics.StoreCircuitBreakerState.WithLabelValues("cb-ratio")))
}

func TestExecute_MinRequests(t *testing.T) {
	cfg := DefaultConfig("cb-min")
	cfg.MinRequests = 10
	cb := New(cfg)

	for i := 0; i < 9; i++ {
		_ = cb.Execute(fail)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State(), "below MinRequests never trips")

	_ = cb.Execute(fail)
	assert.True(t, cb.IsOpen())
}

func TestExecute_ConsecutiveFailures(t *testing.T) {
	cfg := DefaultConfig("cb-consecutive")
	cfg.MinRequests = 1000
	cfg.ConsecutiveFailures = 3
	cb := New(cfg)

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	_ = cb.Execute(ok)
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	assert.Equal(t, gobreaker.StateClosed, cb.State(), "a success resets the streak")

	_ = cb.Execute(fail)
	assert.True(t, cb.IsOpen())
}

func TestExecute_HalfOpenRecovers(t *testing.T) {
	cfg := DefaultConfig("cb-half-open")
	cfg.Timeout = 20 * time.Millisecond
	cfg.MaxRequests = 1
	cfg.ConsecutiveFailures = 1
	cb := New(cfg)

	_ = cb.Execute(fail)
	require.True(t, cb.IsOpen())

	require.Eventually(t, func() bool { return cb.State() == gobreaker.StateHalfOpen },
		time.Second, 5*time.Millisecond)

	require.NoError(t, cb.Execute(ok))
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestExecute_IsSuccessful(t *testing.T) {
	errExpected := errors.New("expected")
	cfg := DefaultConfig("cb-classify")
	cfg.ConsecutiveFailures = 2
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, errExpected) }
	cb := New(cfg)

	for i := 0; i < 10; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return errExpected }), errExpected)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("x")

	assert.Equal(t, "x", cfg.Name)
	assert.Equal(t, uint32(3), cfg.MaxRequests)
	assert.Equal(t, uint32(5), cfg.MinRequests)
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.InDelta(t, 0.6, cfg.FailureThreshold, 1e-9)
	assert.Zero(t, cfg.ConsecutiveFailures)
}
