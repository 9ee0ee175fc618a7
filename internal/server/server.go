// Package server provides the HTTP API for Kioku.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/kioku/internal/config"
	"go.uber.org/zap"
)

// Server is the HTTP server for the Kioku API.
type Server struct {
	state  *AppState
	config *config.Config
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server over the given app state.
func NewServer(state *AppState, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		state:  state,
		config: cfg,
		logger: logger,
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Get("/notes", s.handleListNotes)
		r.Post("/notes", s.handleAddNote)
		r.Post("/notes/chunk", s.handleChunk)
		r.Post("/notes/import", s.handleImport)
		r.Get("/notes/export", s.handleExport)
		r.Post("/notes/save", s.handleSaveNotes)
		r.Post("/embeddings/save", s.handleSaveEmbeddings)
		r.Post("/embeddings/load", s.handleLoadEmbeddings)
		r.Get("/categories", s.handleCategories)
		r.Get("/status", s.handleStatus)
	})
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
