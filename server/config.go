package server

import (
	"time"

	"github.com/xy-planning-network/reqbody"
	"github.com/xy-planning-network/reqbody/logger"
	"github.com/xy-planning-network/reqbody/parser"
)

const (
	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	sentryDsnEnvVar = "SENTRY_DSN"

	// Body parsing defaults
	bodyIgnoreBadRequestEnvVar = "BODY_IGNORE_BAD_REQUEST"
	bodyMaxBytesEnvVar         = "BODY_MAX_BYTES"
	DefaultBodyMaxBytes        = 1 << 20
	jsonAssocEnvVar            = "JSON_ASSOC"
	jsonMaxDepthEnvVar         = "JSON_MAX_DEPTH"

	// Middleware defaults
	corsOriginEnvVar        = "CORS_ORIGIN"
	rateLimitBurstEnvVar    = "RATE_LIMIT_BURST"
	DefaultRateLimitBurst   = 20
	rateLimitRPSEnvVar      = "RATE_LIMIT_RPS"
	DefaultRateLimitRPS     = 5
	rateLimitEnabledEnvVar  = "RATE_LIMIT_ENABLED"
	defaultRateLimitEnabled = true

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
)

// Config holds everything a *Server reads from the environment.
type Config struct {
	Env       reqbody.Environment
	LogLevel  logger.LogLevel
	SentryDSN string

	// IgnoreBadRequestBody passes requests whose body fails to parse to the handler
	// instead of responding with http.StatusBadRequest.
	IgnoreBadRequestBody bool
	MaxBodyBytes         int64
	JSONAssoc            bool
	JSONMaxDepth         int

	CORSOrigin       string
	RateLimitEnabled bool
	RateLimitBurst   int
	RateLimitRPS     int

	Host         string
	Port         string
	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewConfig reads a Config from environment variables, applying defaults for those unset.
func NewConfig() Config {
	port := reqbody.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	return Config{
		Env:       reqbody.EnvVarOrEnv(environmentEnvVar, reqbody.Development),
		LogLevel:  logger.NewLogLevel(reqbody.EnvVarOrString(logLevelEnvVar, "INFO")),
		SentryDSN: reqbody.EnvVarOrString(sentryDsnEnvVar, ""),

		IgnoreBadRequestBody: reqbody.EnvVarOrBool(bodyIgnoreBadRequestEnvVar, false),
		MaxBodyBytes:         int64(reqbody.EnvVarOrInt(bodyMaxBytesEnvVar, DefaultBodyMaxBytes)),
		JSONAssoc:            reqbody.EnvVarOrBool(jsonAssocEnvVar, true),
		JSONMaxDepth:         reqbody.EnvVarOrInt(jsonMaxDepthEnvVar, parser.DefaultMaxDepth),

		CORSOrigin:       reqbody.EnvVarOrString(corsOriginEnvVar, ""),
		RateLimitEnabled: reqbody.EnvVarOrBool(rateLimitEnabledEnvVar, defaultRateLimitEnabled),
		RateLimitBurst:   reqbody.EnvVarOrInt(rateLimitBurstEnvVar, DefaultRateLimitBurst),
		RateLimitRPS:     reqbody.EnvVarOrInt(rateLimitRPSEnvVar, DefaultRateLimitRPS),

		Host:         reqbody.EnvVarOrString(hostEnvVar, DefaultHost),
		Port:         port,
		IdleTimeout:  reqbody.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  reqbody.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: reqbody.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}
