// Package server exposes the slidelint pipeline over HTTP.
//
// Every request carries its own deck, either inline JSON under "deck" or a
// base64 .pptx under "data", so requests share nothing but the cache.
//
//	POST /v1/analyze     overlap report (and bounds check) per slide
//	POST /v1/relations   pairwise relation table for one slide
//	POST /v1/align       align elements, returns moves and the updated deck
//	POST /v1/distribute  distribute elements, same response shape
//	POST /v1/canvas      resolved canvas size of one slide
//	GET  /health         liveness
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/slidelint/pkg/pipeline"
)

// DefaultMaxBodyBytes bounds request bodies when the config leaves it unset.
const DefaultMaxBodyBytes = 32 << 20

// Server serves the HTTP API.
type Server struct {
	Runner *pipeline.Runner

	// Defaults are the analysis options requests start from.
	Defaults pipeline.Options

	Logger       *log.Logger
	MaxBodyBytes int64
}

// New returns a server over runner using the overlap and server settings
// from cfg.
func New(runner *pipeline.Runner, cfg pipeline.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	limit := cfg.Server.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	return &Server{
		Runner:       runner,
		Defaults:     cfg.Options(),
		Logger:       logger,
		MaxBodyBytes: limit,
	}
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json", "multipart/form-data"))
		r.Post("/analyze", s.analyze)
		r.Post("/relations", s.relations)
		r.Post("/align", s.align)
		r.Post("/distribute", s.distribute)
		r.Post("/canvas", s.canvas)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests for up to ten seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
