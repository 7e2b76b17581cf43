package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	reportsGenerated  *prometheus.CounterVec
	leaveTransitions  *prometheus.CounterVec
	reconcileSkipped  prometheus.Counter
}

// New builds a Metrics set on its own registry so several instances can
// coexist in tests.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		reportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_reports_generated_total",
			Help: "Attendance reports rendered, by output format.",
		}, []string{"format"}),
		leaveTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leave_status_transitions_total",
			Help: "Leave application status changes, by target status.",
		}, []string{"status"}),
		reconcileSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leave_balance_reconciliation_skipped_total",
			Help: "Cancellations whose leave type has no reconciled balance counter.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.reportsGenerated,
		m.leaveTransitions,
		m.reconcileSkipped,
	)

	return m
}

func (m *Metrics) ReportGenerated(format string) {
	m.reportsGenerated.WithLabelValues(format).Inc()
}

func (m *Metrics) LeaveTransition(status string) {
	m.leaveTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) ReconciliationSkipped() {
	m.reconcileSkipped.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Middleware records request counts and latency keyed by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
