package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the preview server's Prometheus collectors.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	pagesRendered   *prometheus.CounterVec
	renderFailures  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docindex",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "docindex",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"method", "route"}),
		pagesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docindex",
			Subsystem: "render",
			Name:      "pages_total",
			Help:      "Index pages rendered, by kind",
		}, []string{"kind"}),
		renderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docindex",
			Subsystem: "render",
			Name:      "unrecognized_items_total",
			Help:      "Renders aborted because of an unrecognized sidebar item",
		}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.pagesRendered, m.renderFailures)
	return m
}

// PageRendered counts a rendered page of the given kind ("home", "category").
func (m *Metrics) PageRendered(kind string) {
	m.pagesRendered.WithLabelValues(kind).Inc()
}

// RenderFailed counts a render aborted by an unrecognized item.
func (m *Metrics) RenderFailed() {
	m.renderFailures.Inc()
}

// Middleware records request count and latency, labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
