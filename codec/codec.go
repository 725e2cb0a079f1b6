// Package codec converts request payloads to JSON bytes and response bodies
// back into typed values.
//
// Both directions run on goccy/go-json. Failures are wrapped so callers can
// tell which side of the pipeline broke:
//
//	body, err := codec.Encode(payload)
//	if errors.Is(err, codec.ErrEncode) { ... }
//
//	pr, err := codec.Decode[PullRequest](reply.Body)
//	if errors.Is(err, codec.ErrDecode) { ... }
//
// Decoding is eager: the whole body must already be buffered. A top-level
// null is rejected. JSON alone cannot tell a missing field from a zero one,
// so types that have required fields implement Validator; Decode checks the
// decoded value, and each element of a decoded slice.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
)

var (
	// ErrEncode marks a payload that could not be serialized.
	ErrEncode = errors.New("encode payload")

	// ErrDecode marks a body that could not be parsed into the target type.
	ErrDecode = errors.New("decode body")

	// errEmptyBody is returned when there is nothing to decode.
	errEmptyBody = errors.New("empty body")

	errNullBody = errors.New("null body")

	// ErrMissingField is the cause reported by Validator implementations
	// for a required field the body did not set.
	ErrMissingField = errors.New("missing field")
)

// Validator is implemented by decoded types with required fields.
type Validator interface {
	Validate() error
}

// MissingField returns an error wrapping ErrMissingField for name.
func MissingField(name string) error {
	return fmt.Errorf("%w %q", ErrMissingField, name)
}

// Encode serializes v as JSON.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %T: %w", ErrEncode, v, err)
	}
	return data, nil
}

// Decode parses body into a fresh T.
//
// An empty body, a top-level null, and a value whose Validate fails are
// decode failures. The returned error wraps ErrDecode and
// keeps the parser diagnostic, so errors.As against *json.SyntaxError or
// *json.UnmarshalTypeError still works.
func Decode[T any](body []byte) (T, error) {
	var out T
	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) == 0:
		return out, fmt.Errorf("%w: %T: %w", ErrDecode, out, errEmptyBody)
	case bytes.Equal(trimmed, []byte("null")):
		return out, fmt.Errorf("%w: %T: %w", ErrDecode, out, errNullBody)
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %T: %w", ErrDecode, out, err)
	}
	if err := validate(out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %T: %w", ErrDecode, out, err)
	}
	return out, nil
}

// validate checks v, or each element when v is a slice.
func validate(v any) error {
	if val, ok := v.(Validator); ok {
		return val.Validate()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil
	}
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Pointer && elem.IsNil() {
			continue
		}
		if val, ok := elem.Interface().(Validator); ok {
			if err := val.Validate(); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	}
	return nil
}
