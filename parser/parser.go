package parser

//go:generate mockgen -destination=parsertest/mock_parser.go -package=parsertest . Parser

// Identifiers the default parsers are provided under.
const (
	FormID = "parser.form"
	JSONID = "parser.json"
	YAMLID = "parser.yaml"
)

// A Parser decodes a raw request body.
//
// Parse returns nil, a mapping or a sequence.
// Parse returns nil for an empty body.
// Parse returns an error wrapping *DecodeError when rawBody is malformed for the Parser's format.
//
// Implementations must be safe for concurrent use.
type Parser interface {
	Parse(rawBody string) (any, error)
}

// Func adapts an ordinary function to a Parser.
type Func func(rawBody string) (any, error)

// Parse calls fn(rawBody).
func (fn Func) Parse(rawBody string) (any, error) { return fn(rawBody) }

// A DecodeError is a request body not matching a Parser's format.
// It describes the failure and never includes the body itself.
type DecodeError struct {
	Msg string
}

func (e *DecodeError) Error() string { return e.Msg }
