package middleware_test

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reqbody"
	"github.com/xy-planning-network/reqbody/http/middleware"
	"github.com/xy-planning-network/reqbody/logger"
)

func TestLogRequest(t *testing.T) {
	// Arrange + Act
	actual := middleware.LogRequest(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	ip := "192.168.0.0"
	tcs := []struct {
		name     string
		method   string
		ip       string
		url      *url.URL
		expected []string
		absent   []string
	}{
		{
			"Zero-Value",
			http.MethodGet,
			"",
			&url.URL{Path: "/"},
			[]string{"GET / application/json", "requestID"},
			nil,
		},
		{
			"With-IP",
			http.MethodPost,
			ip,
			&url.URL{Path: "/echo"},
			[]string{ip + " POST /echo application/json"},
			nil,
		},
		{
			"With-Query-Params-Hid",
			http.MethodGet,
			ip,
			&url.URL{Path: "/", RawQuery: "param=true&password=hunter2"},
			[]string{"password=" + reqbody.LogMaskVal},
			[]string{"hunter2"},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelInfo))
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, "https://example.com"+tc.url.String(), nil)
			r = r.Clone(context.WithValue(r.Context(), reqbody.RequestIDKey, "test-id"))
			r.Header.Set("Content-Type", "application/json")

			if tc.ip != "" {
				r = r.Clone(context.WithValue(r.Context(), reqbody.IpAddrKey, tc.ip))
			}

			// Act
			middleware.LogRequest(l)(teapotHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, http.StatusTeapot, w.Code)
			for _, s := range tc.expected {
				require.Contains(t, b.String(), s)
			}

			for _, s := range tc.absent {
				require.NotContains(t, b.String(), s)
			}
		})
	}
}
