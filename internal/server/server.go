// Package server exposes the host runtime over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/opmodel/mfe/internal/output"
	"github.com/opmodel/mfe/internal/shell"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server routes host API requests to a shell.
type Server struct {
	shell  *shell.Shell
	router chi.Router
}

// New wires the router for sh.
func New(sh *shell.Shell) *Server {
	s := &Server{shell: sh}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)

	r.Get("/api/health", s.health)
	r.Get("/api/modules", s.listModules)
	r.Get("/api/events", s.events)

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(maxBodyBytes))

		r.Get("/api/state", s.getAllState)
		r.Get("/api/state/{module}", s.getState)
		r.Patch("/api/state/{module}", s.mergeState)
		r.Put("/api/state/{module}", s.replaceState)
		r.Delete("/api/state/{module}", s.resetState)

		r.Get("/api/pages", s.getPages)
		r.Put("/api/pages/{module}/{field}", s.setPage)
		r.Delete("/api/pages/{module}/{field}", s.resetPage)

		r.Get("/api/alert", s.getAlert)
		r.Post("/api/alert", s.setAlert)
		r.Delete("/api/alert", s.clearAlert)

		r.Get("/api/link/{module}", s.link)
		r.Get("/api/query/{module}", s.query)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, "no such route", "NOT_FOUND", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, "method not allowed", "METHOD_NOT_ALLOWED", http.StatusMethodNotAllowed)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		output.Info("host API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	output.Info("host API stopped")
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "ok",
		"modules": s.shell.Registry().Len(),
	})
}

func (s *Server) listModules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.shell.Registry().All())
}
