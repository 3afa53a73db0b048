package middleware

import (
	"net/http"
	"net/url"

	"github.com/xy-planning-network/reqbody"
)

// ForceHTTPS redirects HTTP requests to HTTPS when env is production or staging.
//
// The "X-Forwarded-Proto" is used to check whether HTTP was requested due to the application
// running behind a proxy.
// The redirect is a 308 so clients resend the method and body they used.
func ForceHTTPS(env reqbody.Environment) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secure := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
			if secure || !(env.IsProduction() || env.IsStaging()) {
				handler.ServeHTTP(w, r)
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}
