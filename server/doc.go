/*
Package server runs reqbody-echo, a small web service showing the body parser at work.

# Server

The main entrypoint to package server is the [Server] type.
A [Server] ought to be constructed with [New].
[*Server.Guide] begins the web server.
Stop it with [*Server.Shutdown], by cancelling the context given to [WithContext],
or by sending a signal [*Server.Guide] listens for.

Every request passes through these middlewares, in order:
ReportPanic, ForceHTTPS, RequestID, InjectIPAddress, LogRequest, RateLimit, CORS and the body parser.

The endpoints are:
  - POST /echo: responds with the parsed body of the request as JSON
  - POST /greet: binds the parsed body into a struct and validates it
  - GET /metrics: Prometheus metrics, including the outcomes of the body parser

# Configuration

A developer configures the service through environment variables.
Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BODY_IGNORE_BAD_REQUEST: pass requests whose body fails to parse to the handler; default: false
  - BODY_MAX_BYTES: the largest request body read; default: 1048576
  - CORS_ORIGIN: the origin allowed to make cross-origin requests; default: none
  - ENVIRONMENT: the environment the application is running in; cf. [reqbody.Environment]
  - HOST: the host the application is running on; default: localhost
  - JSON_ASSOC: decode JSON objects into maps rather than ordered objects; default: true
  - JSON_MAX_DEPTH: the deepest nesting a JSON body may have; default: 512
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - PORT: the port the application should listen on; default: :3000
  - RATE_LIMIT_BURST: the requests a client may burst to; default: 20
  - RATE_LIMIT_ENABLED: whether to rate limit clients by IP address; default: true
  - RATE_LIMIT_RPS: the requests a client may make every second; default: 5
  - SENTRY_DSN: the Sentry project errors are reported to; default: none
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
*/
package server
