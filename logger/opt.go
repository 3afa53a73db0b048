package logger

import "log"

// A LoggerOptFn is a functional option configuring a ConsoleLogger when constructing a new one.
type LoggerOptFn func(*ConsoleLogger)

// WithEnv sets the environment ConsoleLogger is operating in.
func WithEnv(env string) LoggerOptFn {
	return func(l *ConsoleLogger) {
		l.env = env
	}
}

// WithLevel sets the log level ConsoleLogger uses.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *ConsoleLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger ConsoleLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *ConsoleLogger) {
		l.l = log
	}
}

// WithSentryDSN ships Error and Fatal logs to the Sentry project identified by dsn.
func WithSentryDSN(dsn string) LoggerOptFn {
	return func(l *ConsoleLogger) {
		l.dsn = dsn
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *ConsoleLogger) {
		l.skip = skip
	}
}
