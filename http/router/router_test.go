package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reqbody"
	"github.com/xy-planning-network/reqbody/container"
	"github.com/xy-planning-network/reqbody/http/middleware"
	"github.com/xy-planning-network/reqbody/http/router"
)

func header(key, val string) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(key, val)
			h.ServeHTTP(w, r)
		})
	}
}

func TestRouterHandleRoutes(t *testing.T) {
	// Arrange
	rt := router.New(reqbody.Testing)
	rt.OnEveryRequest(header("X-Order", "every"), middleware.NewBodyParser(container.Default()).Adapter())

	var parsed any
	rt.HandleRoutes([]router.Route{
		{
			Path:   "/echo",
			Method: http.MethodPost,
			Handler: func(w http.ResponseWriter, r *http.Request) {
				parsed, _ = reqbody.ParsedBodyFromContext(r.Context())
				w.WriteHeader(http.StatusTeapot)
			},
			Middlewares: []middleware.Adapter{header("X-Order", "route")},
		},
	}, header("X-Order", "group"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "https://example.com/echo", strings.NewReader(`{"a":"b"}`))
	r.Header.Set("Content-Type", "application/json")

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, []string{"every", "group", "route"}, w.Header().Values("X-Order"))
	require.Equal(t, map[string]any{"a": "b"}, parsed)
}

func TestRouterRecoversPanics(t *testing.T) {
	// Arrange
	rt := router.New(reqbody.Testing)
	rt.Handle(router.Route{
		Path:    "/boom",
		Method:  http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) { panic("boom") },
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/boom", nil)

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouterHandleNotFound(t *testing.T) {
	// Arrange
	rt := router.New(reqbody.Testing)
	rt.OnEveryRequest(header("X-Order", "every"))
	rt.HandleNotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/missing", nil)

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, "every", w.Header().Get("X-Order"))
}

func TestRouterSubrouter(t *testing.T) {
	// Arrange
	rt := router.New(reqbody.Testing)
	rt.OnEveryRequest(header("X-Order", "every"))
	sub := rt.Subrouter("/api/v1")
	sub.OnEveryRequest(header("X-Order", "sub"))
	sub.Handle(router.Route{
		Path:    "/echo",
		Method:  http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) },
	})

	rt.Handle(router.Route{
		Path:    "/echo",
		Method:  http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/api/v1/echo", nil)

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, []string{"every", "sub"}, w.Header().Values("X-Order"))

	// Arrange
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "https://example.com/echo", nil)

	// Act
	rt.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"every"}, w.Header().Values("X-Order"))
}
