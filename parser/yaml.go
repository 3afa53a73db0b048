package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const yamlErrPrefix = "Invalid YAML data in request body: "

// YAML parses application/yaml request bodies.
//
// Only the first document of a multi-document stream is read.
// Mappings decode into map[string]any; keys that are not strings are formatted with fmt.Sprint.
// A document holding a bare scalar parses to nil.
type YAML struct{}

// NewYAML constructs a *YAML.
func NewYAML() *YAML { return new(YAML) }

// Parse decodes rawBody.
func (YAML) Parse(rawBody string) (any, error) {
	if rawBody == "" {
		return nil, nil
	}

	var val any
	if err := yaml.Unmarshal([]byte(rawBody), &val); err != nil {
		return nil, &DecodeError{Msg: yamlErrPrefix + err.Error()}
	}

	switch v := normalizeYAML(val).(type) {
	case map[string]any:
		return v, nil
	case []any:
		return v, nil
	default:
		return nil, nil
	}
}

// normalizeYAML rewrites every map[any]any under val into map[string]any.
func normalizeYAML(val any) any {
	switch v := val.(type) {
	case map[string]any:
		for k, vv := range v {
			v[k] = normalizeYAML(vv)
		}

		return v
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, vv := range v {
			m[fmt.Sprint(k)] = normalizeYAML(vv)
		}

		return m
	case []any:
		for i, vv := range v {
			v[i] = normalizeYAML(vv)
		}

		return v
	default:
		return v
	}
}
