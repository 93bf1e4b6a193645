package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CatalogRequests     *prometheus.CounterVec
	CatalogCacheHits    *prometheus.CounterVec
	EmailsSent          *prometheus.CounterVec
}

// New регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "code"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		CatalogRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "catalog_requests_total",
			Help:        "Requests to the CostaSolinfo catalog by endpoint and outcome",
			ConstLabels: labels,
		}, []string{"endpoint", "outcome"}),

		CatalogCacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "catalog_cache_total",
			Help:        "Catalog cache lookups by result (hit, miss, stale)",
			ConstLabels: labels,
		}, []string{"result"}),

		EmailsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "emails_sent_total",
			Help:        "Order and cancellation emails by kind and outcome",
			ConstLabels: labels,
		}, []string{"kind", "outcome"}),
	}
}
