package dombind

import (
	"reflect"

	"github.com/dombind/dombind/builder"
	"github.com/dombind/dombind/dom"
)

// Decode reconstructs a T from a parsed DOM node.
func Decode[T any](n *dom.Node) (T, error) {
	var out T
	if err := DecodeInto(n, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// DecodeBytes parses a single JSON document and decodes it into a T.
func DecodeBytes[T any](data []byte) (T, error) {
	n, err := dom.Parse(data)
	if err != nil {
		var zero T
		return zero, &Error{Code: CodeParseError, Message: err.Error(), Cause: err}
	}
	return Decode[T](n)
}

// DecodeInto decodes a DOM node into target, which must be a non-nil pointer.
// The node is borrowed, never mutated.
func DecodeInto(n *dom.Node, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return newError(CodeUnsupportedType, "", "target must be a non-nil pointer, got %T", target)
	}
	return decodeValue(n, rv.Elem(), "")
}

// Encode serializes v to JSON text.
func Encode(v any) (string, error) {
	b := builder.New()
	if err := EncodeTo(b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EncodeWithCapacity serializes v to JSON text using a pre-allocated output
// buffer capacity hint.
func EncodeWithCapacity(v any, capacity int) (string, error) {
	b := builder.NewWithCapacity(capacity)
	if err := EncodeTo(b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EncodeTo serializes v into an existing builder. On error the builder may
// hold partial output; callers that need atomicity should Clear it.
func EncodeTo(b *builder.Builder, v any) error {
	return encodeValue(b, reflect.ValueOf(v), "")
}
