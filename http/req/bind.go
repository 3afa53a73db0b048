package req

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"

	"github.com/gorilla/schema"
	"github.com/mitchellh/mapstructure"
	"github.com/xy-planning-network/reqbody"
	"github.com/xy-planning-network/reqbody/parser"
)

// A Binder copies request payloads into structs and validates them.
type Binder struct {
	queryParamDecoder *schema.Decoder
	validator
}

// NewBinder constructs a *Binder.
func NewBinder() *Binder {
	return &Binder{
		queryParamDecoder: newQueryParamDecoder(),
		validator:         newValidator(),
	}
}

// Bind decodes into a pointer to a struct the parsed body a BodyParser attached to r.
// If successful, Bind runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
//
// Bind errors with reqbody.ErrMissingData when r carries no parsed body,
// as is the case when no parser is registered for its content type
// or the body was empty.
func (b *Binder) Bind(r *http.Request, structPtr any) error {
	v, ok := reqbody.ParsedBodyFromContext(r.Context())
	if !ok || v == nil {
		return fmt.Errorf("reqbody/http/req: %w: no parsed body on request", reqbody.ErrMissingData)
	}

	return b.BindValue(v, structPtr)
}

// BindValue decodes v, a parsed body, into a pointer to a struct.
// Keys in v match fields by their "json" struct tag.
// If successful, BindValue runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (b *Binder) BindValue(v any, structPtr any) error {
	if err := checkStructPtr(structPtr); err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(objectToMap),
		Result:     structPtr,
		TagName:    "json",
	})
	if err != nil {
		return fmt.Errorf("reqbody/http/req: %w: %s", reqbody.ErrBadAny, err)
	}

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("reqbody/http/req: %w: failed decoding request body: %s", reqbody.ErrBadFormat, err)
	}

	if err := b.validate(structPtr); err != nil {
		return fmt.Errorf("reqbody/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// BindQuery decodes into a pointer to a struct the query param data in *http.Request.URL.Query.
// If successful, BindQuery runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (b *Binder) BindQuery(params url.Values, structPtr any) error {
	if err := checkStructPtr(structPtr); err != nil {
		return err
	}

	if err := b.queryParamDecoder.Decode(structPtr, params); err != nil {
		return fmt.Errorf("reqbody/http/req: failed decoding request query params: %w", translateDecoderError(err))
	}

	if err := b.validate(structPtr); err != nil {
		return fmt.Errorf("reqbody/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// objectToMap lets ordered objects decode like any other mapping.
func objectToMap(from, to reflect.Type, data any) (any, error) {
	if obj, ok := data.(*parser.Object); ok {
		return obj.Map(), nil
	}

	return data, nil
}

// checkStructPtr asserts structPtr is a non-nil pointer to a struct.
func checkStructPtr(structPtr any) error {
	rv := reflect.ValueOf(structPtr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("reqbody/http/req: %w: called with %T, not a pointer to a struct", reqbody.ErrBadAny, structPtr)
	}

	return nil
}
