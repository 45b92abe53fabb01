package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"newspaper/internal/handler/http/respond"
	"newspaper/internal/observability/metrics"
)

// Throttle rejects requests with 429 once its token bucket is empty.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle allowing requestsPerSecond sustained
// requests with bursts of up to burst. A non-positive rate disables it.
//
// Example:
//
//	throttle := NewThrottle(20, 40) // 20 req/s with burst of 40
func NewThrottle(requestsPerSecond float64, burst int) *Throttle {
	if requestsPerSecond <= 0 {
		return &Throttle{}
	}
	if burst < 1 {
		burst = int(math.Ceil(requestsPerSecond))
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Middleware applies the throttle to next.
func (t *Throttle) Middleware(next http.Handler) http.Handler {
	if t == nil || t.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.limiter.Allow() {
			metrics.RecordSearchThrottled()
			retry := math.Ceil(1 / float64(t.limiter.Limit()))
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Max(retry, 1))))
			respond.Error(w, http.StatusTooManyRequests, errors.New("too many requests"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
