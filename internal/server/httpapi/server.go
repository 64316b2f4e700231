// Package httpapi exposes the fetch pipeline over HTTP: JSON endpoints, a
// websocket state stream and Prometheus metrics.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/userfeed/internal/logging"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	address  string
	logger   logging.Logger
	handler  *Handler
	gatherer prometheus.Gatherer
}

// Option configures a Server.
type Option func(*Server)

// WithStreamConfig overrides the websocket keepalive settings.
func WithStreamConfig(c StreamConfig) Option {
	return func(s *Server) { s.handler.stream = c }
}

func NewServer(address string, l logging.Logger, p Pipeline, g prometheus.Gatherer, opts ...Option) *Server {
	logger := l.With("module", "http_server")
	s := &Server{
		address:  address,
		logger:   logger,
		handler:  NewHandler(p, logger, DefaultStreamConfig()),
		gatherer: g,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Get("/health", s.handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", s.handler.State)
		r.Post("/fetch", s.handler.Fetch)
		r.Get("/users", s.handler.Users)
		r.Get("/users/{id}", s.handler.User)
		r.Get("/stream", s.handler.Stream)
	})

	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully. Open streams observe the cancellation through their
// request context.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		err := srv.Serve(listen)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		timeoutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(timeoutCtx); err != nil {
			return err
		}
		return <-errCh
	}
}
