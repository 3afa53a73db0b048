package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xy-planning-network/reqbody/container"
	"github.com/xy-planning-network/reqbody/http/middleware"
	"github.com/xy-planning-network/reqbody/http/router"
	"github.com/xy-planning-network/reqbody/logger"
	"github.com/xy-planning-network/reqbody/parser"
)

// Mime types the default body parser decodes, besides "application/json".
var (
	formMimeTypes = []string{"application/x-www-form-urlencoded"}
	yamlMimeTypes = []string{"application/yaml", "application/x-yaml", "text/yaml"}
)

// defaultLogger constructs a logger.Logger configured for use in the application.
func defaultLogger(cfg Config) logger.Logger {
	l := logger.New(
		logger.WithEnv(cfg.Env.String()),
		logger.WithLevel(cfg.LogLevel),
		logger.WithSentryDSN(cfg.SentryDSN),
	)
	l.Debug("setting up app logger", nil)

	return l
}

// defaultRegistry constructs a *prometheus.Registry
// that also collects Go runtime and process metrics.
func defaultRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// defaultContainer provides the default parsers,
// replacing the JSON parser with one configured by cfg.
func defaultContainer(cfg Config) *container.Container {
	return container.With(
		container.Default(),
		container.Lazy(parser.JSONID, func() (any, error) {
			return parser.NewJSON(
				parser.WithMapping(cfg.JSONAssoc),
				parser.WithMaxDepth(cfg.JSONMaxDepth),
			), nil
		}),
	)
}

// defaultBodyParser constructs the *middleware.BodyParser every request passes through.
//
// JSON, YAML and form bodies are parsed.
// Outside of production, a bad request body is answered with the decoder's message.
func defaultBodyParser(
	cfg Config,
	r container.Resolver,
	l logger.Logger,
	m *middleware.Metrics,
) (*middleware.BodyParser, error) {
	bp := middleware.NewBodyParser(r).
		WithLogger(l).
		WithMetrics(m).
		WithMaxBytes(cfg.MaxBodyBytes)

	var err error
	for _, mt := range yamlMimeTypes {
		if bp, err = bp.WithParser(mt, parser.YAMLID); err != nil {
			return nil, err
		}
	}

	for _, mt := range formMimeTypes {
		if bp, err = bp.WithParser(mt, parser.FormID); err != nil {
			return nil, err
		}
	}

	if cfg.IgnoreBadRequestBody {
		return bp.IgnoreBadRequestBody(), nil
	}

	failure := middleware.NewBadRequestHandler(l)
	if !cfg.Env.ExposesDecodeDetail() {
		failure = failure.WithoutDetail()
	}

	return bp.WithFailureHandler(failure), nil
}

// defaultRouter constructs a *router.Router applying, in order,
// the middlewares every request passes through.
func defaultRouter(cfg Config, l logger.Logger, bp *middleware.BodyParser) *router.Router {
	var visitors *middleware.Visitors
	if cfg.RateLimitEnabled {
		visitors = middleware.NewVisitors(float64(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	rt := router.New(cfg.Env)
	rt.OnEveryRequest(
		middleware.ForceHTTPS(cfg.Env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
		middleware.RateLimit(visitors),
		middleware.CORS(cfg.CORSOrigin),
		bp.Adapter(),
	)

	rt.HandleNotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	return rt
}

// defaultServer constructs a default [*http.Server].
func defaultServer(cfg Config) *http.Server {
	return &http.Server{
		Addr:         cfg.Host + cfg.Port,
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// metricsHandler serves the metrics gathered by reg.
func metricsHandler(reg *prometheus.Registry) http.HandlerFunc {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP
}
