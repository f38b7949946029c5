// Package server serves generated index pages on demand for local preview.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gomponents "maragu.dev/gomponents"

	"docindex/internal/app"
	"docindex/internal/config"
	"docindex/internal/domain"
	"docindex/internal/middleware"
	"docindex/internal/sidebar"
	"docindex/internal/ui"
	"docindex/internal/ui/assets"
)

// Server renders index pages per request from a loaded site.
type Server struct {
	cfg      *config.Config
	app      *app.App
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *middleware.Metrics
}

// New returns a Server for a.
func New(cfg *config.Config, a *app.App, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return &Server{
		cfg:      cfg,
		app:      a,
		logger:   logger,
		registry: reg,
		metrics:  middleware.NewMetrics(reg),
	}
}

// Router builds the HTTP handler. Background middleware state lives until ctx
// is done.
func (s *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(s.metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimiter(ctx, middleware.RateLimitConfig{
			RequestsPerSecond: s.cfg.RateLimitRPS,
			Burst:             s.cfg.RateLimitBurst,
		}))
		r.Get("/", s.Home)
		r.Get("/{sidebar}", s.SidebarHome)
		r.Get("/{sidebar}/*", s.Category)
	})

	return r
}

// Home renders the default sidebar's top-level entries.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	sb, ok := s.app.Sidebars.Default()
	if !ok {
		s.renderError(w, r, http.StatusNotFound, "No sidebars", "The sidebars file defines no sidebars.")
		return
	}
	s.renderSidebarHome(w, r, sb)
}

// SidebarHome renders one sidebar's top-level entries.
func (s *Server) SidebarHome(w http.ResponseWriter, r *http.Request) {
	sb, ok := s.app.Sidebars.Get(chi.URLParam(r, "sidebar"))
	if !ok {
		s.renderError(w, r, http.StatusNotFound, "Not found", "No sidebar named "+chi.URLParam(r, "sidebar")+".")
		return
	}
	s.renderSidebarHome(w, r, sb)
}

// Category renders the generated index page of the category at the slug path.
func (s *Server) Category(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "sidebar")
	sb, ok := s.app.Sidebars.Get(name)
	if !ok {
		s.renderError(w, r, http.StatusNotFound, "Not found", "No sidebar named "+name+".")
		return
	}
	slug := strings.TrimSuffix(chi.URLParam(r, "*"), "/index.html")
	page, ok := sidebar.FindCategory(sb, slug)
	if !ok {
		s.renderError(w, r, http.StatusNotFound, "Not found", "No category at "+slug+".")
		return
	}
	node, err := s.app.Renderer.IndexPage(page.Category)
	s.respond(w, r, "category", node, err)
}

func (s *Server) renderSidebarHome(w http.ResponseWriter, r *http.Request, sb sidebar.Sidebar) {
	node, err := s.app.Renderer.HomePage(sb.Name, sb.Items)
	s.respond(w, r, "home", node, err)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, kind string, node gomponents.Node, err error) {
	if err != nil {
		var variantErr *domain.UnrecognizedVariantError
		if errors.As(err, &variantErr) {
			s.metrics.RenderFailed()
		}
		s.logger.ErrorContext(r.Context(), "render page", "kind", kind, "path", r.URL.Path, "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Render failed", err.Error())
		return
	}
	s.metrics.PageRendered(kind)
	s.renderHTML(w, r, http.StatusOK, node)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	if status == http.StatusInternalServerError && s.cfg.IsProduction() {
		message = "The page could not be rendered."
	}
	s.renderHTML(w, r, status, ui.ErrorPage(title, message, "/"))
}

// renderHTML writes a full document. Headers are already sent when the body
// fails, so write errors are only logged.
func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte("<!DOCTYPE html>")); err != nil {
		s.logger.WarnContext(r.Context(), "write response", "path", r.URL.Path, "error", err)
		return
	}
	if err := node.Render(w); err != nil {
		s.logger.WarnContext(r.Context(), "write response", "path", r.URL.Path, "error", err)
	}
}

// Run serves until ctx is canceled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting preview server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down preview server", "grace_period", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("preview server stopped")
	return nil
}
