package parser

import (
	"bytes"
	"encoding/json"
)

// An Object is a decoded object whose keys keep the order they appeared in.
//
// A key appearing more than once keeps its first position and its last value.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject constructs an empty *Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]any)}
}

// Get retrieves the value for key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len is the number of distinct keys.
func (o *Object) Len() int { return len(o.keys) }

// Set adds key to o or replaces its value.
func (o *Object) Set(key string, val any) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.vals[key] = val
}

// Map copies the top level of o into a map[string]any.
// Nested objects stay *Object.
func (o *Object) Map() map[string]any {
	m := make(map[string]any, len(o.vals))
	for k, v := range o.vals {
		m[k] = v
	}

	return m
}

// MarshalJSON encodes o as a JSON object in key order.
func (o *Object) MarshalJSON() ([]byte, error) {
	b := new(bytes.Buffer)
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(o.vals[k])
		if err != nil {
			return nil, err
		}

		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')

	return b.Bytes(), nil
}
