package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reqbody"
	"github.com/xy-planning-network/reqbody/http/middleware"
)

func TestForceHTTPS(t *testing.T) {
	tcs := []struct {
		name     string
		env      reqbody.Environment
		proto    string
		expected int
	}{
		{"Development", reqbody.Development, "http", http.StatusTeapot},
		{"Testing", reqbody.Testing, "http", http.StatusTeapot},
		{"Production-HTTPS", reqbody.Production, "https", http.StatusTeapot},
		{"Production-HTTP", reqbody.Production, "http", http.StatusPermanentRedirect},
		{"Staging-HTTP", reqbody.Staging, "http", http.StatusPermanentRedirect},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "http://example.com/echo", nil)
			r.Header.Set("X-Forwarded-Proto", tc.proto)

			// Act
			middleware.ForceHTTPS(tc.env)(teapotHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.expected, w.Code)
			if tc.expected == http.StatusPermanentRedirect {
				require.Equal(t, "https://example.com/echo", w.Header().Get("Location"))
			}
		})
	}
}
