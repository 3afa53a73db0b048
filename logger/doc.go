/*
Package logger provides logging functionality to a reqbody service by defining the required behavior in [Logger]
and providing an implementation of it with [ConsoleLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [ConsoleLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*ConsoleLogger.Warn], [*ConsoleLogger.Error], and [*ConsoleLogger.Fatal] produce messages.

# ConsoleLogger

Log messages emitted by [ConsoleLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2024/04/28 15:55:21 [DEBUG] reqbody/http/middleware/body_parser.go:143 'decode failed' log_context: {"error":"Invalid JSON data in request body: unexpected EOF","request":{"contentType":"application/json","method":"POST","url":"/echo"}}

# SentryLogger

[New] returns a [SentryLogger] when [WithSentryDSN] supplies a DSN.
Logs carrying an error in their [LogContext] at Warn or above are captured in Sentry.
*/
package logger
