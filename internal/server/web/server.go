// Package web is the HTTP transport of helpdesk: gin routing, cookie
// sessions, the JSON envelope and request validation.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/dmitrijs2005/helpdesk/internal/logging"
	"github.com/dmitrijs2005/helpdesk/internal/server/config"
	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	cfg    *config.Config
	logger logging.Logger
	deps   Services
	engine *gin.Engine
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, deps Services) *HTTPServer {
	s := &HTTPServer{
		cfg:    cfg,
		logger: l.With("module", "http_server"),
		deps:   deps,
	}
	s.engine = s.initRouter()
	return s
}

// Handler exposes the router, mostly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// serve is replaced in tests to simulate listener failures.
var serve = func(srv *http.Server, l net.Listener) error { return srv.Serve(l) }

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most ShutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.cfg.EndpointAddrHTTP)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := serve(srv, listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		<-stopped
		return err
	}

	return <-stopped
}
