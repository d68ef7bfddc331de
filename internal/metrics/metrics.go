package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	SearchesTotal *prometheus.CounterVec

	CatalogRequestsTotal   *prometheus.CounterVec
	CatalogRequestDuration prometheus.Histogram
	CatalogResultsReturned prometheus.Histogram

	SessionWritesTotal *prometheus.CounterVec
}

// New регистрирует метрики в reg. nil - глобальный registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookfinder_http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookfinder_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "bookfinder_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		SearchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookfinder_searches_total",
				Help: "Search submissions by outcome",
			},
			[]string{"outcome"},
		),

		CatalogRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookfinder_catalog_requests_total",
				Help: "Total number of catalog API requests",
			},
			[]string{"status"},
		),
		CatalogRequestDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bookfinder_catalog_request_duration_seconds",
				Help:    "Catalog API request duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),
		CatalogResultsReturned: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bookfinder_catalog_results_returned",
				Help:    "Number of items returned per successful catalog request",
				Buckets: []float64{0, 1, 5, 10, 15, 20},
			},
		),

		SessionWritesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookfinder_session_writes_total",
				Help: "Session result writes by status",
			},
			[]string{"status"},
		),
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordRequest(method, route, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) RecordSearch(outcome string) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordCatalogRequest(status string, duration time.Duration, results int) {
	m.CatalogRequestsTotal.WithLabelValues(status).Inc()
	m.CatalogRequestDuration.Observe(duration.Seconds())
	if status == "success" {
		m.CatalogResultsReturned.Observe(float64(results))
	}
}

func (m *Metrics) RecordSessionWrite(status string) {
	m.SessionWritesTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) IncRequestsInFlight() {
	m.RequestsInFlight.Inc()
}

func (m *Metrics) DecRequestsInFlight() {
	m.RequestsInFlight.Dec()
}
