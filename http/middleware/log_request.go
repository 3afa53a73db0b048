package middleware

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/reqbody"
	"github.com/xy-planning-network/reqbody/logger"
)

// LogRequest logs the request's method, requested URL, content type and originating IP address
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following query param keys:
// - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uri := r.URL.Path
			q := r.URL.Query()
			reqbody.Mask(q, "password")
			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri}
			if ip, ok := r.Context().Value(reqbody.IpAddrKey).(string); ok {
				strs = append([]string{ip}, strs...)
			}

			if ct := r.Header.Get("Content-Type"); ct != "" {
				strs = append(strs, ct)
			}

			var data map[string]any
			if id, ok := r.Context().Value(reqbody.RequestIDKey).(string); ok {
				data = map[string]any{"requestID": id}
			}

			ls.Info(strings.Join(strs, " "), &logger.LogContext{Data: data})
			h.ServeHTTP(w, r)
		})
	}
}
