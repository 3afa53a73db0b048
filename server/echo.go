package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/reqbody"
	"github.com/xy-planning-network/reqbody/http/req"
	"github.com/xy-planning-network/reqbody/http/router"
	"github.com/xy-planning-network/reqbody/logger"
)

// An echoResponse describes what the body parser attached to a request.
type echoResponse struct {
	ContentType string `json:"contentType"`
	Parsed      bool   `json:"parsed"`
	Body        any    `json:"body"`
}

// A greeting is the payload "/greet" binds request bodies into.
type greeting struct {
	Name     string   `json:"name" validate:"required"`
	Greeting string   `json:"greeting" validate:"omitempty,max=32"`
	Tags     []string `json:"tags" validate:"max=5"`
}

// handleRoutes registers the service's endpoints.
func (s *Server) handleRoutes() {
	binder := req.NewBinder()

	routes := []router.Route{
		{Path: "/echo", Method: http.MethodPost, Handler: s.echo},
		{Path: "/greet", Method: http.MethodPost, Handler: s.greet(binder)},
		{Path: "/metrics", Method: http.MethodGet, Handler: metricsHandler(s.reg)},
	}

	if s.cfg.CORSOrigin != "" {
		for _, path := range []string{"/echo", "/greet"} {
			routes = append(routes, router.Route{Path: path, Method: http.MethodOptions, Handler: noContent})
		}
	}

	s.HandleRoutes(routes)
}

// echo responds with the parsed body of the request as JSON.
func (s *Server) echo(w http.ResponseWriter, r *http.Request) {
	body, ok := reqbody.ParsedBodyFromContext(r.Context())
	s.writeJSON(w, r, http.StatusOK, echoResponse{
		ContentType: r.Header.Get("Content-Type"),
		Parsed:      ok,
		Body:        body,
	})
}

// greet binds the parsed body of the request into a greeting.
func (s *Server) greet(binder *req.Binder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var g greeting
		err := binder.Bind(r, &g)

		var verrs req.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			s.writeJSON(w, r, http.StatusUnprocessableEntity, verrs)
			return
		case errors.Is(err, reqbody.ErrMissingData), errors.Is(err, reqbody.ErrBadFormat):
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		case err != nil:
			s.l.Error("failed binding request body", &logger.LogContext{Error: err, Request: r})
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if g.Greeting == "" {
			g.Greeting = "Hello"
		}

		s.writeJSON(w, r, http.StatusOK, map[string]any{
			"message": fmt.Sprintf("%s, %s!", g.Greeting, g.Name),
			"tags":    g.Tags,
		})
	}
}

// writeJSON encodes data as the response body.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, code int, data any) {
	b, err := json.Marshal(data)
	if err != nil {
		s.l.Error("failed encoding response", &logger.LogContext{Error: err, Request: r})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(b)
}

func noContent(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }
