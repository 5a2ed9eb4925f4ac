// Package server exposes the resolution engine over a JSON HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/shabda-reader/shabda/pkg/config"
	"github.com/shabda-reader/shabda/pkg/metrics"
	"github.com/shabda-reader/shabda/pkg/resolve"
	"github.com/shabda-reader/shabda/pkg/sanskrit"
	"github.com/shabda-reader/shabda/pkg/store"
)

// Server wires the resolver, the store registry and the sandhi client into
// an HTTP server.
type Server struct {
	resolver *resolve.Resolver
	registry *store.Registry
	sandhi   *sanskrit.Client // nil when the service is not configured
	log      *slog.Logger
	httpSrv  *http.Server
}

// New builds the server. sandhi may be nil.
func New(cfg config.ServerConfig, resolver *resolve.Resolver, registry *store.Registry, sandhi *sanskrit.Client, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		resolver: resolver,
		registry: registry,
		sandhi:   sandhi,
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/resolve", s.handleResolve)
	mux.HandleFunc("POST /api/resolve/batch", s.handleResolveBatch)
	mux.HandleFunc("GET /api/suggest", s.handleSuggest)
	mux.HandleFunc("GET /api/languages", s.handleLanguages)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      c.Handler(s.withObservability(mux)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Handler returns the full middleware-wrapped handler. Tests drive it
// through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("http server listening", "addr", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
