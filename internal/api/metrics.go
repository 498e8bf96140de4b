package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the counters exported on /metrics.
type Metrics struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	salesRecorded prometheus.Counter
	salesDeleted  prometheus.Counter
	productsAdded prometheus.Counter
	analyses      *prometheus.CounterVec
}

// NewMetrics registers the API collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gst",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gst",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		salesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gst",
			Name:      "sales_recorded_total",
			Help:      "Sales recorded through the API.",
		}),
		salesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gst",
			Name:      "sales_deleted_total",
			Help:      "Sales deleted through the API.",
		}),
		productsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gst",
			Name:      "product_names_imported_total",
			Help:      "Product names submitted for import, before de-duplication.",
		}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gst",
			Name:      "analysis_requests_total",
			Help:      "Analysis requests by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.requests, m.latency, m.salesRecorded, m.salesDeleted, m.productsAdded, m.analyses)
	return m
}

func (m *Metrics) observeRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}
