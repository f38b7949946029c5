package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/category/*", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for range 3 {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category/guides", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.InDelta(t, 3, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/category/*", "404")), 0.001)
}

func TestMetrics_RenderCounters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.PageRendered("category")
	m.PageRendered("category")
	m.RenderFailed()

	assert.InDelta(t, 2, testutil.ToFloat64(m.pagesRendered.WithLabelValues("category")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.renderFailures), 0.001)
}

func TestLogger_WritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := RequestID(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "path=/healthz")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "request_id=req-1")
}
