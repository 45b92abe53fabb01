package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// JobMetrics provides Prometheus metrics for scheduled jobs.
// Run outcomes are counted by metrics.RecordStatsRefresh; these add timing.
//
// Metrics:
//   - {job}_duration_seconds: duration histogram of each run
//   - {job}_last_success_timestamp: Unix timestamp of the last successful run
type JobMetrics struct {
	DurationSeconds      prometheus.Histogram
	LastSuccessTimestamp prometheus.Gauge
}

// NewJobMetrics registers job metrics on reg. A nil reg uses the default registerer.
func NewJobMetrics(job string, reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &JobMetrics{
		DurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    job + "_duration_seconds",
			Help:    "Duration of " + job + " runs in seconds",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 10}, // count queries are quick
		}),
		LastSuccessTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: job + "_last_success_timestamp",
			Help: "Unix timestamp of the last successful " + job + " run",
		}),
	}
}

func (m *JobMetrics) observe(seconds float64, success bool) {
	if m == nil {
		return
	}
	m.DurationSeconds.Observe(seconds)
	if success {
		m.LastSuccessTimestamp.SetToCurrentTime()
	}
}
