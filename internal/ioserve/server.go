// Package ioserve exposes the report pipeline read-only over HTTP.
// Every request recomputes the filter, pivot and summary from the
// cached enriched table, so a re-provisioned database file is picked
// up without a restart.
package ioserve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dispatchlab/crtbox/internal/ioreport"
	"github.com/dispatchlab/crtbox/pkg/config"
	"github.com/gnames/gn"
	"github.com/google/uuid"
)

// shutdownTimeout bounds how long in-flight requests may run after
// a termination signal.
const shutdownTimeout = 5 * time.Second

// Server serves the report API.
type Server struct {
	cfg    *config.Config
	loader *ioreport.Loader
}

// New creates a Server over an already constructed loader. The
// loader's cache is shared by all requests.
func New(cfg *config.Config, loader *ioreport.Loader) *Server {
	return &Server{cfg: cfg, loader: loader}
}

// Run starts the HTTP listener and blocks until the context is
// canceled or a SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(
		ctx, os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		gn.Info("Serving the report API on <em>http://%s</em>", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return StartError(addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "addr", addr)
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), shutdownTimeout,
	)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return ShutdownError(err)
	}
	return nil
}

// Handler builds the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.health)
	mux.HandleFunc("GET /api/v1/filters", s.filters)
	mux.HandleFunc("GET /api/v1/summary", s.summary)
	mux.HandleFunc("GET /api/v1/pivot", s.pivot)
	mux.HandleFunc("GET /api/v1/rows", s.rows)
	mux.HandleFunc("GET /api/v1/export/pivot.csv", s.exportPivot)
	mux.HandleFunc("GET /api/v1/export/raw.csv", s.exportRaw)
	return requestID(mux)
}

// requestID tags every request with a UUID, echoed in the
// X-Request-Id header and attached to the request log line.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set("X-Request-Id", id)
			slog.Info("request",
				"id", id, "method", r.Method, "path", r.URL.Path,
			)
			next.ServeHTTP(w, r)
		})
}
