package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts paginated requests.
	// Labels: endpoint (list, search), offset_range (offset bucket: 0, 1-100, etc.)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_pagination_requests_total",
			Help: "Total number of paginated article requests",
		},
		[]string{"endpoint", "offset_range"},
	)

	// ReturnedItems tracks how many items a paginated request returned.
	ReturnedItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "article_pagination_returned_items",
			Help:    "Number of items returned per paginated request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"endpoint"},
	)
)

// RecordRequest records a paginated request and its result size.
func RecordRequest(endpoint string, params Params, returned int) {
	RequestsTotal.WithLabelValues(endpoint, offsetRangeBucket(params.Offset)).Inc()
	ReturnedItems.WithLabelValues(endpoint).Observe(float64(returned))
}

// offsetRangeBucket returns the offset bucket for a given offset.
func offsetRangeBucket(offset int) string {
	switch {
	case offset <= 0:
		return "0"
	case offset <= 100:
		return "1-100"
	case offset <= 1000:
		return "101-1000"
	default:
		return "1000+"
	}
}
