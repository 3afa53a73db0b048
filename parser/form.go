package parser

import "net/url"

const formErrPrefix = "Invalid form data in request body: "

// Form parses application/x-www-form-urlencoded request bodies
// into a map[string]any.
//
// A key set once maps to its string value;
// a key set more than once maps to a []string of its values in order.
type Form struct{}

// NewForm constructs a *Form.
func NewForm() *Form { return new(Form) }

// Parse decodes rawBody.
func (Form) Parse(rawBody string) (any, error) {
	if rawBody == "" {
		return nil, nil
	}

	vals, err := url.ParseQuery(rawBody)
	if err != nil {
		return nil, &DecodeError{Msg: formErrPrefix + err.Error()}
	}

	m := make(map[string]any, len(vals))
	for k, v := range vals {
		if len(v) == 1 {
			m[k] = v[0]
			continue
		}

		m[k] = v
	}

	return m, nil
}
