package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/reqbody"
	"github.com/xy-planning-network/reqbody/container"
	"github.com/xy-planning-network/reqbody/http/middleware"
	"github.com/xy-planning-network/reqbody/http/router"
	"github.com/xy-planning-network/reqbody/logger"
)

// A Server manages and exposes the components of the echo service to one another.
type Server struct {
	*router.Router

	cfg      Config
	ctx      context.Context
	bp       *middleware.BodyParser
	l        logger.Logger
	metrics  *middleware.Metrics
	reg      *prometheus.Registry
	resolver *container.Container
	srv      *http.Server
}

// New constructs a *Server from the provided options.
// Options run in the order given;
// anything they leave unset is constructed from the Config,
// which NewConfig reads from the environment unless WithConfig is passed.
func New(opts ...ServerOption) (*Server, error) {
	s := &Server{cfg: NewConfig()}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("%w: %s", reqbody.ErrBadConfig, err)
		}
	}

	if err := s.cfg.Env.Valid(); err != nil {
		return nil, fmt.Errorf("%w: environment %q: %s", reqbody.ErrBadConfig, s.cfg.Env, err)
	}

	if s.ctx == nil {
		s.ctx = context.Background()
	}

	if s.l == nil {
		s.l = defaultLogger(s.cfg)
	}

	if s.reg == nil {
		s.reg = defaultRegistry()
	}

	if s.resolver == nil {
		s.resolver = defaultContainer(s.cfg)
	}

	var err error
	s.metrics, err = middleware.NewMetrics(s.reg)
	if err != nil {
		return nil, fmt.Errorf("%w: registering metrics: %s", reqbody.ErrBadConfig, err)
	}

	s.bp, err = defaultBodyParser(s.cfg, s.resolver, s.l, s.metrics)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reqbody.ErrBadConfig, err)
	}

	s.Router = defaultRouter(s.cfg, s.l, s.bp)
	s.handleRoutes()

	if s.srv == nil {
		s.srv = defaultServer(s.cfg)
	}

	s.srv.Handler = s.Router
	s.srv.BaseContext = func(_ net.Listener) context.Context { return s.ctx }

	s.l.Debug(fmt.Sprintf("parsing request bodies of %v", s.bp.MimeTypes()), nil)

	return s, nil
}

func (s *Server) EmitBodyParser() *middleware.BodyParser { return s.bp }
func (s *Server) EmitLogger() logger.Logger              { return s.l }
func (s *Server) EmitRegistry() *prometheus.Registry     { return s.reg }

// Guide begins the web server.
//
// These, and (*Server).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
// - cancelling the context passed to WithContext
func (s *Server) Guide() error {
	ctx, stop := signal.NotifyContext(
		s.ctx,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.l.Info(fmt.Sprintf("running web server at %s", s.srv.Addr), nil)
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		s.l.Error(err.Error(), &logger.LogContext{Error: err})
		return err
	case <-ctx.Done():
		s.l.Info("received shutdown signal", nil)
	}

	return s.Shutdown()
}

// Shutdown shutdowns the web server.
func (s *Server) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.l.Info("shutting down web server", nil)
	err := s.srv.Shutdown(shutdownCtx)
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	s.l.Info("web server shutdown successfully", nil)
	return nil
}
