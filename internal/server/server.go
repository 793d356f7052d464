// Package server exposes the proxy's HTTP surface: coverage fetch and search
// routes, legal-document projection, the refresh webhook, cache statistics,
// Prometheus metrics, and a small API explorer page.
package server

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/carebridge/cms-proxy/pkg/logging"
)

//go:embed web/index.html
var webFS embed.FS

// Options configure the HTTP server.
type Options struct {
	Port           int
	AllowedDomains []string
}

// Server is the proxy HTTP server.
type Server struct {
	http   *http.Server
	logger zerolog.Logger
}

// NewRouter builds the full route tree. Exposed separately from New so tests
// can drive it with httptest.
func NewRouter(svc CoverageService, allowedDomains []string) http.Handler {
	h := &handlers{svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/", handleIndex)
	r.Get("/api/routes", handleRoutes)

	r.Route("/api/cms", func(r chi.Router) {
		// Data routes are browser-facing and origin-guarded; the webhook
		// carries its own bearer auth and stats stays open for probes.
		r.Group(func(r chi.Router) {
			r.Use(domainGuard(allowedDomains))
			r.Get("/fetch", h.handleLiveFetch)
			r.Get("/search", h.handleLiveSearch)
			r.Get("/coverage-entries/fetch", h.handleLiveFetch)
			r.Get("/coverage-entries/cached", h.handleCachedFetch)
			r.Get("/coverage-entries/search", h.handleCachedSearch)
			r.Get("/legal-docs/fetch", h.handleLegalDocs)
		})
		r.Post("/webhook", h.handleWebhook)
		r.Get("/stats", h.handleStats)
	})

	return r
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "explorer page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// New creates a server listening on opts.Port.
func New(svc CoverageService, opts Options) *Server {
	return &Server{
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(svc, opts.AllowedDomains),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logging.NewLogger("server"),
	}
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	s.logger.Info().Msg("Shutting down HTTP server")
	return s.http.Shutdown(shutdownCtx)
}
