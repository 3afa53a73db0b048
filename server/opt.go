package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/reqbody/container"
	"github.com/xy-planning-network/reqbody/logger"
)

// A ServerOption configures a *Server under construction.
type ServerOption func(s *Server) error

// WithConfig replaces the Config read from the environment.
func WithConfig(cfg Config) ServerOption {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

// WithContext sets the context.Context requests are served under.
// Cancelling ctx stops Guide.
func WithContext(ctx context.Context) ServerOption {
	return func(s *Server) error {
		if ctx == nil {
			return errors.New("nil context")
		}

		s.ctx = ctx
		return nil
	}
}

// WithLogger exposes the provided logger.Logger to the *Server.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) error {
		s.l = l
		return nil
	}
}

// WithRegistry registers the *Server's metrics with reg and serves reg at "/metrics".
func WithRegistry(reg *prometheus.Registry) ServerOption {
	return func(s *Server) error {
		s.reg = reg
		return nil
	}
}

// WithResolver resolves parsers through c.
// c must provide every parser the default body parser registers.
func WithResolver(c *container.Container) ServerOption {
	return func(s *Server) error {
		s.resolver = c
		return nil
	}
}

// WithServer replaces the default *http.Server.
// Its Handler and BaseContext are overwritten.
func WithServer(srv *http.Server) ServerOption {
	return func(s *Server) error {
		s.srv = srv
		return nil
	}
}
