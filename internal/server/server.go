// Package server implements the Patchwork HTTP API.
//
// The API exposes the correction pipeline over JSON: clients POST a raw
// graph, the server corrects it, stores the result, and serves the
// corrected graph plus rendered artifacts:
//
//	POST   /api/quilts          correct and store a graph
//	GET    /api/quilts          list stored quilts
//	GET    /api/quilts/{id}     fetch a stored quilt
//	DELETE /api/quilts/{id}     remove a stored quilt
//	GET    /api/quilts/{id}/svg render a stored quilt as SVG
//	GET    /healthz             liveness probe
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/patchworklabs/patchwork/pkg/pipeline"
	"github.com/patchworklabs/patchwork/pkg/store"
)

// Config carries server dependencies and settings.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger

	// ListLimit caps GET /api/quilts responses (default 100).
	ListLimit int
}

// Server wires the correction pipeline and quilt store into an HTTP API.
type Server struct {
	addr      string
	router    chi.Router
	runner    *pipeline.Runner
	store     store.Store
	logger    *log.Logger
	listLimit int

	httpServer *http.Server
}

// New creates a server with its routes registered.
// A nil Store falls back to in-memory storage; a nil Runner gets an
// uncached pipeline.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.ListLimit == 0 {
		cfg.ListLimit = 100
	}

	s := &Server{
		addr:      cfg.Addr,
		runner:    cfg.Runner,
		store:     cfg.Store,
		logger:    cfg.Logger,
		listLimit: cfg.ListLimit,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/quilts", func(r chi.Router) {
		r.Post("/", s.handleCreateQuilt)
		r.Get("/", s.handleListQuilts)
		r.Get("/{id}", s.handleGetQuilt)
		r.Delete("/{id}", s.handleDeleteQuilt)
		r.Get("/{id}/svg", s.handleRenderQuilt)
	})

	s.router = r
	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server and blocks until ctx is cancelled or
// the listener fails. On cancellation the server drains in-flight
// requests for up to 10 seconds.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// logRequests logs one line per request with method, path, status and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
