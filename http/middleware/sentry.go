package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/reqbody"
)

// ReportPanic recovers panics raised further down the chain,
// such as a BodyParser hitting a misconfigured parser,
// reports them to Sentry and responds with http.StatusInternalServerError.
//
// In development, ReportPanic only recovers and responds.
func ReportPanic(env reqbody.Environment) Adapter {
	if env.IsDevelopment() || env.IsTesting() {
		return recoverPanic
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler {
		return recoverPanic(sh.Handle(h))
	}
}

// recoverPanic turns a panic into a 500 response.
func recoverPanic(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		h.ServeHTTP(w, r)
	})
}
