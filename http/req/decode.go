package req

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/reqbody"
)

// newQueryParamDecoder constructs the *schema.Decoder BindQuery uses.
// Keys matching no field are skipped.
func newQueryParamDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return dec
}

// translateDecoderError sorts an error from *schema.Decoder into
// a mismatch between the query params and the struct (ValidationErrors),
// a struct the decoder cannot fill (reqbody.ErrNotImplemented)
// or anything else (reqbody.ErrBadFormat, reqbody.ErrUnexpected).
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", reqbody.ErrBadFormat, err)
	}

	var validErrs ValidationErrors
	for _, pkgErr := range pkgErrs {
		switch err := pkgErr.(type) {
		case schema.ConversionError:
			// NOTE: Index is -1 for fields that are not slices.
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   fmt.Sprintf("bad value at index %d", max(0, err.Index)),
				Rule:  "must be " + err.Type.String(),
			})

		case schema.EmptyFieldError:
			return fmt.Errorf(`%w: use validate pkg to set "required" fields, not schema`, reqbody.ErrNotImplemented)

		case schema.UnknownKeyError:
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   "value is set",
				Rule:  "unexpected key should not be set",
			})

		default:
			// A field whose type has no schema.Converter only fails once a value arrives for it.
			if strings.Contains(err.Error(), "schema: converter not found for") {
				return fmt.Errorf("%w: cannot convert values into unsupported type", reqbody.ErrNotImplemented)
			}

			return fmt.Errorf("%w: %s", reqbody.ErrUnexpected, err)
		}
	}

	return validErrs
}
