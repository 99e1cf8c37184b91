package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SearchRecorder exports search pipeline metrics to Prometheus.
// It implements domain.SearchMetrics.
type SearchRecorder struct {
	searches *prometheus.CounterVec
	duration *prometheus.HistogramVec
	results  prometheus.Histogram
}

// NewSearchRecorder creates the search collectors and registers them with reg
func NewSearchRecorder(reg prometheus.Registerer) (*SearchRecorder, error) {
	r := &SearchRecorder{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_searches_total",
				Help: "Product searches by pipeline outcome (direct, fallback, empty, error).",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_search_duration_seconds",
				Help:    "Time spent resolving a product search, store I/O included.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"outcome"},
		),
		results: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalog_search_results",
				Help:    "Number of products returned per successful search.",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
		),
	}

	for _, c := range []prometheus.Collector{r.searches, r.duration, r.results} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveSearch records one completed search
func (r *SearchRecorder) ObserveSearch(outcome string, duration time.Duration, results int) {
	r.searches.WithLabelValues(outcome).Inc()
	r.duration.WithLabelValues(outcome).Observe(duration.Seconds())
	if outcome != "error" {
		r.results.Observe(float64(results))
	}
}
