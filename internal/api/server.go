// Package api serves a read-only preview of a generated corpus: summary
// counts and sample rows straight from the sqlite load, for eyeballing a
// dataset before pointing a training job at it.
package api

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the preview HTTP server.
type Server struct {
	router *chi.Mux
	server *http.Server
}

// NewServer creates a preview server over a loaded corpus database.
func NewServer(addr string, db *sql.DB, version string) *Server {
	handler := NewHandler(db, version)
	router := chi.NewRouter()

	router.Use(RecoverMiddleware)
	router.Use(TracingMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(middleware.RealIP)
	router.Use(middleware.Compress(5))

	router.Get("/health", handler.Health)
	router.Get("/summary", handler.Summary)
	router.Get("/momo", handler.ListMomo)
	router.Get("/bank", handler.ListBank)

	return &Server{
		router: router,
		server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Router exposes the chi mux, for tests.
func (s *Server) Router() http.Handler { return s.router }

// Start runs the server until it fails or is shut down.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
