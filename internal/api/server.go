// Package api serves the team and player queries over HTTP as JSON.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/pable/go-ipl-stats/internal/config"
	"github.com/pable/go-ipl-stats/internal/dataset"
	"github.com/pable/go-ipl-stats/internal/metrics"
)

// defaultRequestTimeout applies when server.request_timeout is unset.
const defaultRequestTimeout = 25 * time.Second

// Server is the HTTP front end over one loaded dataset.
type Server struct {
	ds      *dataset.Dataset
	metrics *metrics.Manager
	cfg     config.ServerConfig
	router  *chi.Mux
	server  *http.Server
}

// NewServer wires middleware and routes for ds.
func NewServer(ds *dataset.Dataset, m *metrics.Manager, cfg config.ServerConfig) *Server {
	s := &Server{
		ds:      ds,
		metrics: m,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	m.ObserveDataset(ds.Stats())
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.instrument)
	s.router.Use(middleware.Timeout(s.requestTimeout()))
	s.router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler)
}

func (s *Server) requestTimeout() time.Duration {
	if s.cfg.RequestTimeout > 0 {
		return s.cfg.RequestTimeout
	}
	return defaultRequestTimeout
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleSeasons)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/seasons", s.handleSeasons)
		r.Get("/teams", s.handleTeams)
		r.Get("/teamvteam", s.handleHeadToHead)
		r.Get("/team-record", s.handleTeamRecord)
		r.Get("/batting-record", s.handleBattingRecord)
		r.Get("/bowling-record", s.handleBowlingRecord)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", nil)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})
}

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	slog.Info("http server listening", "addr", s.cfg.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
