package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"

	"github.com/xy-planning-network/reqbody"
	"github.com/xy-planning-network/reqbody/container"
	"github.com/xy-planning-network/reqbody/logger"
	"github.com/xy-planning-network/reqbody/parser"
)

// BodyParser decodes the body of a request with the parser registered for its content type
// and stores the result in the request context,
// retrievable with reqbody.ParsedBodyFromContext.
//
// A BodyParser is never mutated after construction.
// Every With method returns a new *BodyParser, leaving the receiver as it was,
// so one BodyParser can serve any number of concurrent requests.
type BodyParser struct {
	resolver container.Resolver

	// mime type key => parser identifier
	parsers map[string]string

	// nil ignores bad request bodies
	failure FailureHandler

	logger   logger.Logger
	metrics  *Metrics
	maxBytes int64
}

// NewBodyParser constructs a *BodyParser resolving parsers through r.
//
// "application/json" is registered to parser.JSONID.
// Decode failures are answered by a BadRequestHandler.
func NewBodyParser(r container.Resolver) *BodyParser {
	return &BodyParser{
		resolver: r,
		parsers: map[string]string{
			"application/json": parser.JSONID,
		},
		failure: NewBadRequestHandler(nil),
	}
}

// WithParser registers the parser provided as id for mimeType.
// Parameters in mimeType, such as "; charset=utf-8", are ignored.
// A parser already registered for mimeType is replaced.
//
// WithParser errors with reqbody.ErrInvalidArgument if mimeType has no type and subtype,
// if id is empty or if nothing is provided as id.
// The parser itself is not retrieved until a request needs it.
func (bp *BodyParser) WithParser(mimeType, id string) (*BodyParser, error) {
	if err := validateMimeType(mimeType); err != nil {
		return nil, err
	}

	if id == "" {
		return nil, fmt.Errorf("%w: the parser identifier cannot be empty", reqbody.ErrInvalidArgument)
	}

	if !bp.resolver.Has(id) {
		return nil, fmt.Errorf("%w: the parser %q cannot be found", reqbody.ErrInvalidArgument, id)
	}

	n := bp.clone()
	n.parsers = bp.copyParsers()
	n.parsers[normalizeMimeType(mimeType)] = id

	return n, nil
}

// WithoutParsers unregisters the parsers for mimeTypes.
// Unregistering a mime type without a parser does nothing.
// Calling WithoutParsers with no mime types unregisters every parser.
//
// WithoutParsers errors with reqbody.ErrInvalidArgument
// if any mimeType has no type and subtype.
func (bp *BodyParser) WithoutParsers(mimeTypes ...string) (*BodyParser, error) {
	n := bp.clone()
	if len(mimeTypes) == 0 {
		n.parsers = make(map[string]string)
		return n, nil
	}

	n.parsers = bp.copyParsers()
	for _, mt := range mimeTypes {
		if err := validateMimeType(mt); err != nil {
			return nil, err
		}

		delete(n.parsers, normalizeMimeType(mt))
	}

	return n, nil
}

// WithFailureHandler sets the FailureHandler answering requests whose body fails to parse.
// A nil h is the same as IgnoreBadRequestBody.
func (bp *BodyParser) WithFailureHandler(h FailureHandler) *BodyParser {
	n := bp.clone()
	n.failure = h
	return n
}

// IgnoreBadRequestBody passes requests whose body fails to parse
// to the next handler with no parsed body.
func (bp *BodyParser) IgnoreBadRequestBody() *BodyParser {
	return bp.WithFailureHandler(nil)
}

// WithLogger logs decode failures at Debug and contract violations at Error through l.
func (bp *BodyParser) WithLogger(l logger.Logger) *BodyParser {
	n := bp.clone()
	n.logger = l
	return n
}

// WithMetrics counts the outcome of every request in m.
func (bp *BodyParser) WithMetrics(m *Metrics) *BodyParser {
	n := bp.clone()
	n.metrics = m
	return n
}

// WithMaxBytes limits how much of a request body is read.
// A longer body fails to parse.
// n <= 0 removes the limit.
func (bp *BodyParser) WithMaxBytes(n int64) *BodyParser {
	c := bp.clone()
	c.maxBytes = n
	return c
}

// MimeTypes lists the registered mime type keys in sorted order.
func (bp *BodyParser) MimeTypes() []string {
	mts := make([]string, 0, len(bp.parsers))
	for mt := range bp.parsers {
		mts = append(mts, mt)
	}

	sort.Strings(mts)

	return mts
}

// Process parses the body of r and calls next.
//
// When r has no "Content-Type" or no parser is registered for it, next receives r unchanged.
// When parsing succeeds, next receives a copy of r carrying the parsed body.
// When parsing fails, the FailureHandler answers and next is not called,
// or, if bad request bodies are ignored, next receives r with no parsed body.
//
// Process errors with reqbody.ErrContractViolation when a parser is misconfigured:
// the component provided for it is not a parser.Parser,
// or it returns a value that is not nil, a mapping or a sequence,
// or it fails with an error other than a *parser.DecodeError.
// Nothing is written to w and next is not called in that case.
func (bp *BodyParser) Process(w http.ResponseWriter, r *http.Request, next http.Handler) error {
	mt := contentType(r)
	id, ok := bp.parsers[mt]
	if mt == "" || !ok {
		bp.metrics.observe(OutcomePassthrough, "")
		next.ServeHTTP(w, r)
		return nil
	}

	p, err := bp.resolve(id)
	if err != nil {
		bp.metrics.observe(OutcomeContractViolation, mt)
		return err
	}

	raw, err := bp.readBody(w, r)
	r = r.WithContext(r.Context())
	r.Body = io.NopCloser(bytes.NewReader(raw))

	var parsed any
	if err == nil {
		parsed, err = p.Parse(string(raw))
	}

	if err == nil {
		if !isStructured(parsed) {
			bp.metrics.observe(OutcomeContractViolation, mt)
			return fmt.Errorf(
				"%w: %T.Parse() returned %T, must be a mapping, a sequence or nil",
				reqbody.ErrContractViolation, p, parsed,
			)
		}

		bp.metrics.observe(OutcomeParsed, mt)
		next.ServeHTTP(w, r.WithContext(reqbody.NewParsedBodyContext(r.Context(), parsed)))
		return nil
	}

	var de *parser.DecodeError
	if !errors.As(err, &de) {
		bp.metrics.observe(OutcomeContractViolation, mt)
		return fmt.Errorf("%w: %T.Parse() failed without a *parser.DecodeError: %s", reqbody.ErrContractViolation, p, err)
	}

	if bp.logger != nil {
		bp.logger.Debug("failed decoding request body", &logger.LogContext{Error: de, Request: r})
	}

	if bp.failure == nil {
		bp.metrics.observe(OutcomeIgnored, mt)
		next.ServeHTTP(w, r)
		return nil
	}

	bp.metrics.observe(OutcomeRejected, mt)
	bp.failure.HandleFailure(w, r, de)

	return nil
}

// Adapter exposes Process as an Adapter.
//
// An error from Process is logged and raised as a panic
// for recovering middleware, such as ReportPanic, to surface.
func (bp *BodyParser) Adapter() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := bp.Process(w, r, h); err != nil {
				if bp.logger != nil {
					bp.logger.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
				}

				panic(err)
			}
		})
	}
}

func (bp *BodyParser) clone() *BodyParser {
	n := *bp
	return &n
}

func (bp *BodyParser) copyParsers() map[string]string {
	m := make(map[string]string, len(bp.parsers))
	for k, v := range bp.parsers {
		m[k] = v
	}

	return m
}

// resolve retrieves the parser.Parser provided as id.
func (bp *BodyParser) resolve(id string) (parser.Parser, error) {
	v, err := bp.resolver.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving parser %q: %s", reqbody.ErrContractViolation, id, err)
	}

	p, ok := v.(parser.Parser)
	if !ok {
		return nil, fmt.Errorf("%w: %q provides %T, not a parser.Parser", reqbody.ErrContractViolation, id, v)
	}

	return p, nil
}

// readBody reads all of r.Body, up to the configured limit.
// A failed read is a *parser.DecodeError.
func (bp *BodyParser) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body := r.Body
	if bp.maxBytes > 0 {
		body = http.MaxBytesReader(w, body, bp.maxBytes)
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return b, &parser.DecodeError{Msg: "Unable to read request body: " + err.Error()}
	}

	return b, nil
}

// isStructured reports whether v is nil, a mapping or a sequence.
// Structs and pointers to structs count as mappings.
func isStructured(v any) bool {
	if v == nil {
		return true
	}

	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	case reflect.Pointer:
		return t.Elem().Kind() == reflect.Struct
	default:
		return false
	}
}
