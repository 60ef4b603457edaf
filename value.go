package dombind

// Kind enumerates the variants of Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindUint64
	KindFloat64
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// Value is a dynamically typed JSON value: a closed sum over null, bool,
// signed/unsigned/floating numbers, string, ordered array and ordered object.
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	arr  []Value
	obj  []Field
}

// Field is one entry of an object Value. Objects preserve insertion order and
// keys are expected to be unique.
type Field struct {
	Key   string
	Value Value
}

// NullValue returns the null Value.
func NullValue() Value { return Value{kind: KindNull} }

// BoolValue returns a boolean Value.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// Int64Value returns a signed integer Value.
func Int64Value(v int64) Value { return Value{kind: KindInt64, i: v} }

// Uint64Value returns an unsigned integer Value.
func Uint64Value(v uint64) Value { return Value{kind: KindUint64, u: v} }

// Float64Value returns a floating-point Value.
func Float64Value(v float64) Value { return Value{kind: KindFloat64, f: v} }

// StringValue returns a string Value.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// ArrayValue returns an array Value holding the given items in order.
func ArrayValue(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// ObjectValue returns an object Value holding the given fields in order.
func ObjectValue(fields ...Field) Value { return Value{kind: KindObject, obj: fields} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; ok is false for other kinds.
func (v Value) Bool() (b bool, ok bool) { return v.b, v.kind == KindBool }

// Int64 returns the signed integer payload; ok is false for other kinds.
func (v Value) Int64() (i int64, ok bool) { return v.i, v.kind == KindInt64 }

// Uint64 returns the unsigned integer payload; ok is false for other kinds.
func (v Value) Uint64() (u uint64, ok bool) { return v.u, v.kind == KindUint64 }

// Float64 returns the floating-point payload; ok is false for other kinds.
func (v Value) Float64() (f float64, ok bool) { return v.f, v.kind == KindFloat64 }

// Str returns the string payload; ok is false for other kinds.
func (v Value) Str() (s string, ok bool) { return v.s, v.kind == KindString }

// Items returns the elements of an array Value, nil for other kinds. The
// returned slice is owned by the Value.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Fields returns the entries of an object Value, nil for other kinds. The
// returned slice is owned by the Value.
func (v Value) Fields() []Field {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Equal reports deep structural equality. Numbers compare within the same
// kind only.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt64:
		return v.i == o.i
	case KindUint64:
		return v.u == o.u
	case KindFloat64:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for i := range v.obj {
			if v.obj[i].Key != o.obj[i].Key || !v.obj[i].Value.Equal(o.obj[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
