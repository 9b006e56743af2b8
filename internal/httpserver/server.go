// Package httpserver is the local HTTP surface the browser UI talks to. It
// exposes the cart, session, checkout and order-lifecycle operations and owns
// no commerce state itself.
package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server over the storefront components.
func New(addr string, logger *log.Logger, deps Deps, allowedOrigins []string) *Server {
	router := buildRouter(logger, deps, allowedOrigins)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
