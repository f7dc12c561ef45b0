// Package metrics registers the service's Prometheus collectors once and
// exposes narrow record helpers so callers never touch collector handles.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "mobilepost_"

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	importRows *prometheus.CounterVec
	importRuns prometheus.Counter
)

// Init registers all collectors with the default registry. Safe to call
// more than once.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route pattern and status",
			},
			[]string{"route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		)
		importRows = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "import_rows_total",
				Help: "Import pipeline rows by outcome",
			},
			[]string{"outcome"},
		)
		importRuns = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "import_runs_total",
				Help: "Completed import runs",
			},
		)

		prometheus.MustRegister(httpRequests, httpLatency, importRows, importRuns)
	})
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(route string, status int, elapsed time.Duration) {
	if httpRequests == nil {
		return
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveImport records the outcome tallies of one import run.
func ObserveImport(imported, skipped, duplicates int) {
	if importRows == nil {
		return
	}
	importRows.WithLabelValues("imported").Add(float64(imported))
	importRows.WithLabelValues("skipped").Add(float64(skipped))
	importRows.WithLabelValues("duplicate").Add(float64(duplicates))
	importRuns.Inc()
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
