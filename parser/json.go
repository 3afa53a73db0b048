package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxDepth is the nesting limit a JSON uses unless configured otherwise.
	DefaultMaxDepth = 512

	jsonErrPrefix = "Invalid JSON data in request body: "
)

var (
	errDepth       = errors.New("maximum stack depth exceeded")
	errTrailing    = errors.New("unexpected data after top-level value")
	errMalformUTF8 = errors.New("malformed UTF-8 characters, possibly incorrectly encoded")
)

// A JSONFlag toggles leniency when decoding JSON.
type JSONFlag uint8

const (
	// InvalidUTF8Ignore drops invalid UTF-8 sequences instead of failing.
	InvalidUTF8Ignore JSONFlag = 1 << iota

	// UseNumber decodes numbers as json.Number instead of float64.
	UseNumber
)

// JSON parses application/json request bodies.
//
// A JSON object or array parses to a value;
// a scalar such as true, 1 or "str" parses to nil.
type JSON struct {
	mapping  bool
	maxDepth int
	flags    JSONFlag
}

// A JSONOption configures a *JSON when constructing one.
type JSONOption func(*JSON)

// WithMapping sets whether JSON objects decode into map[string]any (true)
// or into *Object (false), which retains key order.
func WithMapping(on bool) JSONOption {
	return func(p *JSON) {
		p.mapping = on
	}
}

// WithMaxDepth sets the nesting limit.
// The top-level value sits at depth 1 and the members of an array or object
// sit one level deeper than it;
// an array or object whose members would sit deeper than max fails to parse.
//
// Non-positive values leave the limit unchanged.
func WithMaxDepth(max int) JSONOption {
	return func(p *JSON) {
		if max > 0 {
			p.maxDepth = max
		}
	}
}

// WithFlags replaces the decoding flags.
func WithFlags(flags JSONFlag) JSONOption {
	return func(p *JSON) {
		p.flags = flags
	}
}

// NewJSON constructs a *JSON.
//
// By default, objects decode into map[string]any,
// the depth limit is DefaultMaxDepth
// and InvalidUTF8Ignore is set.
func NewJSON(opts ...JSONOption) *JSON {
	p := &JSON{
		mapping:  true,
		maxDepth: DefaultMaxDepth,
		flags:    InvalidUTF8Ignore,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse decodes rawBody.
func (p *JSON) Parse(rawBody string) (any, error) {
	if rawBody == "" {
		return nil, nil
	}

	if !utf8.ValidString(rawBody) {
		if p.flags&InvalidUTF8Ignore == 0 {
			return nil, &DecodeError{Msg: jsonErrPrefix + errMalformUTF8.Error()}
		}

		rawBody = strings.ToValidUTF8(rawBody, "")
	}

	dec := json.NewDecoder(strings.NewReader(rawBody))
	if p.flags&UseNumber != 0 {
		dec.UseNumber()
	}

	w := jsonWalker{dec: dec, mapping: p.mapping, maxDepth: p.maxDepth}
	val, err := w.value(0)
	if err != nil {
		return nil, &DecodeError{Msg: jsonErrPrefix + err.Error()}
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errTrailing
		}

		return nil, &DecodeError{Msg: jsonErrPrefix + err.Error()}
	}

	switch val.(type) {
	case map[string]any, *Object, []any:
		return val, nil
	default:
		return nil, nil
	}
}

// jsonWalker assembles a value from the tokens of a *json.Decoder,
// enforcing the nesting limit as it descends.
type jsonWalker struct {
	dec      *json.Decoder
	mapping  bool
	maxDepth int
}

// value reads the next complete value.
// depth is the number of arrays and objects enclosing it.
func (w jsonWalker) value(depth int) (any, error) {
	tok, err := w.token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	// NOTE: values inside this container sit at depth+2.
	if depth+2 > w.maxDepth {
		return nil, errDepth
	}

	switch delim {
	case '[':
		return w.array(depth + 1)
	case '{':
		return w.object(depth + 1)
	default:
		return nil, fmt.Errorf("invalid character %q looking for beginning of value", rune(delim))
	}
}

func (w jsonWalker) array(depth int) (any, error) {
	arr := make([]any, 0)
	for w.dec.More() {
		v, err := w.value(depth)
		if err != nil {
			return nil, err
		}

		arr = append(arr, v)
	}

	if _, err := w.token(); err != nil {
		return nil, err
	}

	return arr, nil
}

func (w jsonWalker) object(depth int) (any, error) {
	obj := NewObject()
	for w.dec.More() {
		tok, err := w.token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid object key %v", tok)
		}

		v, err := w.value(depth)
		if err != nil {
			return nil, err
		}

		obj.Set(key, v)
	}

	if _, err := w.token(); err != nil {
		return nil, err
	}

	if w.mapping {
		return obj.vals, nil
	}

	return obj, nil
}

// token reads the next token, reporting a premature end of input
// as io.ErrUnexpectedEOF.
func (w jsonWalker) token() (json.Token, error) {
	tok, err := w.dec.Token()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}

	return tok, err
}
