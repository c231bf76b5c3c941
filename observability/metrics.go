package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus instruments.
type Metrics struct {
	// Registry owns the instruments below; the /metrics endpoint serves it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	checkOutcomes   *prometheus.CounterVec
	hmrcErrors      prometheus.Counter
}

// NewMetrics creates a dedicated registry and registers every instrument in
// it. A private registry avoids duplicate-collector panics when NewMetrics
// runs more than once, as it does in tests.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "income_proving_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		checkOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "income_proving_category_checks_total",
				Help: "Category check outcomes by category and status.",
			},
			[]string{"category", "status"},
		),
		hmrcErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "income_proving_hmrc_errors_total",
				Help: "Total failed income record retrievals.",
			},
		),
	}
}

// ObserveRequest records the duration of one named operation.
func (m *Metrics) ObserveRequest(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// CountCheck records one category check outcome.
func (m *Metrics) CountCheck(category, status string) {
	m.checkOutcomes.WithLabelValues(category, status).Inc()
}

// CountHmrcError records one failed income record retrieval.
func (m *Metrics) CountHmrcError() {
	m.hmrcErrors.Inc()
}
