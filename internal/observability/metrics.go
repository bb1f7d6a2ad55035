package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the Prometheus collectors for the API and check-ins.
type Metrics struct {
	Registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge
	checkIns    *prometheus.CounterVec
	sockets     prometheus.Gauge
}

// NewMetrics registers on a private registry, not the global default.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		apiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lessonbridge_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		apiLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lessonbridge_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lessonbridge_http_inflight_requests",
			Help: "HTTP requests currently being served",
		}),
		checkIns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lessonbridge_checkins_total",
				Help: "Lesson check-in attempts by outcome",
			},
			[]string{"outcome"},
		),
		sockets: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lessonbridge_realtime_sockets",
			Help: "Open realtime socket connections",
		}),
	}
	reg.MustRegister(
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.checkIns,
		m.sockets,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ApiInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) ApiInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

func (m *Metrics) ObserveAPI(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// CheckIn outcomes: "checked_in", "already_checked_in", "not_found", "error".
func (m *Metrics) CheckIn(outcome string) {
	if m != nil {
		m.checkIns.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) SocketOpened() {
	if m != nil {
		m.sockets.Inc()
	}
}

func (m *Metrics) SocketClosed() {
	if m != nil {
		m.sockets.Dec()
	}
}
