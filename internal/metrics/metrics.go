package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the instruments used for monitoring the console.
// It includes a histogram for upstream EMS API request latency, counters
// for editor submissions and page renders, and a gauge for live sessions.
type Metrics struct {
	APIRequestDuration *prometheus.HistogramVec
	Submissions        *prometheus.CounterVec
	PageViews          *prometheus.CounterVec
	ActiveSessions     prometheus.Gauge
}

// NewMetrics creates a new Metrics instance registered on reg.
//
// Label conventions:
//   - operation: API client operation name ('list_employees', 'login', ...)
//   - status: HTTP status code of the upstream response, or 'error' when
//     the request never produced one
//   - mode: 'create' or 'edit'
//   - result: 'success', 'invalid' or 'failure'
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		APIRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emsconsole_api_request_duration_seconds",
			Help:    "Duration of requests to the upstream EMS API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		Submissions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "emsconsole_editor_submissions_total",
			Help: "Total editor submissions, by mode and outcome.",
		}, []string{"mode", "result"}),
		PageViews: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "emsconsole_page_views_total",
			Help: "Total page renders, by page.",
		}, []string{"page"}),
		ActiveSessions: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "emsconsole_active_sessions",
			Help: "Number of console sessions currently stored.",
		}),
	}

	metrics.Submissions.WithLabelValues("create", "success")
	metrics.Submissions.WithLabelValues("edit", "success")

	return metrics
}
