package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/reqbody"
)

// RequestID adds a uuid to the request context under reqbody.RequestIDKey
// and echoes it in the "X-Request-Id" response header.
//
// An "X-Request-Id" header already on the request is kept when it is a valid uuid.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set("X-Request-Id", id)
			ctx := context.WithValue(r.Context(), reqbody.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
