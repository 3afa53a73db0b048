package reqbody

import "context"

type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request.
	IpAddrKey Key = "IpAddrKey"

	// ParsedBodyKey stashes the structured value decoded from an HTTP request body.
	ParsedBodyKey Key = "ParsedBodyKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "reqbody context key: " + string(k)
}

// parsedBody boxes the value stored under ParsedBodyKey
// so a nil parse result is distinguishable from an unset one.
type parsedBody struct{ val any }

// NewParsedBodyContext returns a copy of ctx carrying v as the parsed request body.
// A previously set parsed body is shadowed.
func NewParsedBodyContext(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ParsedBodyKey, parsedBody{v})
}

// ParsedBodyFromContext retrieves the parsed request body set by NewParsedBodyContext.
// The bool reports whether a parsed body was set at all;
// it is true with a nil value when a parser ran and found nothing to attach.
func ParsedBodyFromContext(ctx context.Context) (any, bool) {
	pb, ok := ctx.Value(ParsedBodyKey).(parsedBody)
	if !ok {
		return nil, false
	}

	return pb.val, true
}
