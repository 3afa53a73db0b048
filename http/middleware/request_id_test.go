package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/reqbody"
	"github.com/xy-planning-network/reqbody/http/middleware"
)

func TestRequestID(t *testing.T) {
	existing := uuid.NewString()
	tcs := []struct {
		name   string
		header string
		keep   bool
	}{
		{"Missing", "", false},
		{"Not-UUID", "abc", false},
		{"Valid", existing, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			if tc.header != "" {
				r.Header.Set("X-Request-Id", tc.header)
			}

			var actual string

			// Act
			middleware.RequestID()(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
				val, ok := rx.Context().Value(reqbody.RequestIDKey).(string)
				require.True(t, ok)
				actual = val
			})).ServeHTTP(w, r)

			// Assert
			require.NotZero(t, actual)
			require.Equal(t, actual, w.Header().Get("X-Request-Id"))
			if tc.keep {
				require.Equal(t, tc.header, actual)
			} else {
				_, err := uuid.Parse(actual)
				require.Nil(t, err)
			}
		})
	}
}
