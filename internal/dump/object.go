package dump

import (
	"encoding/json"
	"fmt"
	"math"
)

// Object is a decoded JSON object from a dump line.
//
// The accessors never fail on optional data: a missing field and a field of
// the wrong type both yield the zero value.
type Object map[string]any

// String returns the string stored under key, or "" when the field is absent
// or not a string.
func (o Object) String(key string) string {
	s, _ := o[key].(string)
	return s
}

// RequiredString returns the string stored under key. A missing or non-string
// field is reported as ErrMalformed.
func (o Object) RequiredString(key string) (string, error) {
	v, ok := o[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMalformed, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, want string", ErrMalformed, key, v)
	}
	return s, nil
}

// Object returns the nested object stored under key.
func (o Object) Object(key string) (Object, bool) {
	return AsObject(o[key])
}

// Array returns the array stored under key.
func (o Object) Array(key string) ([]any, bool) {
	a, ok := o[key].([]any)
	return a, ok
}

// AsObject converts a decoded JSON value to an Object.
func AsObject(v any) (Object, bool) {
	switch m := v.(type) {
	case Object:
		return m, true
	case map[string]any:
		return Object(m), true
	}
	return nil, false
}

// AsInt64 converts a decoded JSON number to an int64. Fractional and
// out-of-range values are rejected.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
