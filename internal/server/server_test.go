package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docindex/internal/app"
	"docindex/internal/config"
	"docindex/internal/ui"
)

const testSidebars = `
sidebars:
  docs:
    - type: category
      label: Guides
      items:
        - type: link
          href: /docs/guides/setup
          label: Setup
        - type: link
          href: https://example.com
          label: Elsewhere
    - type: category
      label: Broken
      href: /docs/broken
      items:
        - type: banner
  api:
    - type: link
      href: /api
      label: API Reference
`

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sidebars.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSidebars), 0o644))

	cfg := &config.Config{
		SidebarsPath:       path,
		Locale:             "en",
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
		CORSAllowedOrigins: []string{"*"},
	}
	a, err := app.New(app.Deps{Cfg: cfg})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	s := New(cfg, a, nil)
	return s, s.Router(ctx)
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_HomeUsesDefaultSidebar(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
	assert.Contains(t, body, "🗃️ Guides")
	assert.Contains(t, body, `href="/docs/guides/setup"`)
	assert.Contains(t, body, "2 items")
}

func TestRouter_SidebarHome(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(h, "/api")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "API Reference")

	rec = get(h, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CategoryPage(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(h, "/docs/guides")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Guides</title>")
	assert.Contains(t, body, "📄️ Setup")
	assert.Contains(t, body, "🔗 Elsewhere")

	rec = get(h, "/docs/guides/index.html")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(h, "/docs/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No category at missing.")
}

func TestRouter_UnknownItemIsServerError(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(h, "/docs/broken")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown item type {&#34;type&#34;:&#34;banner&#34;}")

	metrics := get(h, "/metrics")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "docindex_render_unrecognized_items_total 1")
}

func TestRouter_MetricsCountPages(t *testing.T) {
	_, h := newTestServer(t)
	require.Equal(t, http.StatusOK, get(h, "/docs/guides").Code)

	body := get(h, "/metrics").Body.String()
	assert.Contains(t, body, `docindex_render_pages_total{kind="category"} 1`)
	assert.Contains(t, body, `docindex_http_requests_total{method="GET",route="/{sidebar}/*",status="200"} 1`)
}

func TestRouter_StaticAssets(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(h, "/static/css/app.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".card-container")
}

func TestRouter_ProductionHidesRenderErrors(t *testing.T) {
	s, h := newTestServer(t)
	s.cfg.Env = "production"

	rec := get(h, "/docs/broken")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "banner")
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	s.cfg.ListenAddr = "127.0.0.1:0"
	s.cfg.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()
	require.NoError(t, <-done)
}

type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestRenderHTML_LogsWriteErrors(t *testing.T) {
	s, _ := newTestServer(t)
	var logs bytes.Buffer
	s.logger = slog.New(slog.NewTextHandler(&logs, nil))

	w := failingWriter{httptest.NewRecorder()}
	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	s.renderHTML(w, req, http.StatusOK, ui.ErrorPage("t", "m", "/"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "write response")
	assert.Contains(t, logs.String(), "connection reset")
	assert.Contains(t, logs.String(), "path=/docs")
}
