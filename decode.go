package dombind

import (
	"errors"
	"reflect"
	"unicode/utf8"

	"github.com/dombind/dombind/dom"
	"github.com/dombind/dombind/internal/fields"
)

// Char is a single Unicode code point. It decodes from a JSON string holding
// exactly one character and encodes back to that string.
type Char rune

var (
	valueType = reflect.TypeOf(Value{})
	charType  = reflect.TypeOf(Char(0))
	nodeType  = reflect.TypeOf((*dom.Node)(nil))
)

// wrapDOMErr converts a dom accessor failure into a typed adapter error.
func wrapDOMErr(err error, path string) error {
	var te *dom.TypeError
	if errors.As(err, &te) {
		return &Error{Code: CodeInvalidType, Path: path, Message: te.Error(), Cause: te}
	}
	var re *dom.RangeError
	if errors.As(err, &re) {
		return &Error{Code: CodeOverflow, Path: path, Message: re.Error(), Cause: re}
	}
	return &Error{Code: CodeInvalidType, Path: path, Message: err.Error(), Cause: err}
}

func decodeValue(n *dom.Node, rv reflect.Value, path string) error {
	t := rv.Type()
	if dec, ok := codecDecoderFor(t); ok {
		v, err := dec(n)
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				return err
			}
			return &Error{Code: CodeInvalidType, Path: path, Message: err.Error(), Cause: err}
		}
		if v == nil {
			rv.SetZero()
		} else {
			rv.Set(reflect.ValueOf(v))
		}
		return nil
	}
	switch t {
	case valueType:
		v, err := fromNode(n, path, 0)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(v))
		return nil
	case nodeType:
		// Borrow the subtree as-is; the caller defers its interpretation.
		rv.Set(reflect.ValueOf(n))
		return nil
	case charType:
		return decodeChar(n, rv, path)
	}

	switch rv.Kind() {
	case reflect.Bool:
		b, err := n.Bool()
		if err != nil {
			return wrapDOMErr(err, path)
		}
		rv.SetBool(b)
		return nil
	case reflect.String:
		s, err := n.Str()
		if err != nil {
			return wrapDOMErr(err, path)
		}
		rv.SetString(s)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := n.Int64()
		if err != nil {
			return wrapDOMErr(err, path)
		}
		if rv.OverflowInt(i) {
			return newError(CodeOverflow, path, "int64 value %d out of range for %s", i, t)
		}
		rv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := n.Uint64()
		if err != nil {
			return wrapDOMErr(err, path)
		}
		if rv.OverflowUint(u) {
			return newError(CodeOverflow, path, "uint64 value %d out of range for %s", u, t)
		}
		rv.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := n.Float64()
		if err != nil {
			return wrapDOMErr(err, path)
		}
		rv.SetFloat(f)
		return nil
	case reflect.Pointer:
		if n.IsNull() {
			rv.SetZero()
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(t.Elem()))
		}
		return decodeValue(n, rv.Elem(), path)
	case reflect.Interface:
		if variants, ok := enumFor(t); ok {
			return decodeEnum(n, rv, path, variants)
		}
		if t.NumMethod() == 0 {
			v, err := decodeAny(n, path)
			if err != nil {
				return err
			}
			if v == nil {
				rv.SetZero()
			} else {
				rv.Set(reflect.ValueOf(v))
			}
			return nil
		}
		return newError(CodeUnsupportedType, path, "cannot decode into unregistered interface type %s", t)
	case reflect.Slice:
		if n.IsNull() {
			rv.SetZero()
			return nil
		}
		elems, err := n.Array()
		if err != nil {
			return wrapDOMErr(err, path)
		}
		out := reflect.MakeSlice(t, len(elems), len(elems))
		for i, el := range elems {
			if err := decodeValue(el, out.Index(i), indexPath(path, i)); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	case reflect.Array:
		elems, err := n.Array()
		if err != nil {
			return wrapDOMErr(err, path)
		}
		if len(elems) != rv.Len() {
			return newError(CodeInvalidType, path, "expected %d elements, got %d", rv.Len(), len(elems))
		}
		for i, el := range elems {
			if err := decodeValue(el, rv.Index(i), indexPath(path, i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if n.IsNull() {
			rv.SetZero()
			return nil
		}
		if t.Key().Kind() != reflect.String {
			return newError(CodeUnsupportedType, path, "map key type %s is not a string", t.Key())
		}
		cur, err := newObjectCursor(n, path)
		if err != nil {
			return err
		}
		m := reflect.MakeMapWithSize(t, n.Len())
		for {
			key, ok := cur.NextKey()
			if !ok {
				break
			}
			vn, err := cur.Value()
			if err != nil {
				return err
			}
			elem := reflect.New(t.Elem()).Elem()
			if err := decodeValue(vn, elem, childPath(path, key)); err != nil {
				return err
			}
			kv := reflect.New(t.Key()).Elem()
			kv.SetString(key)
			m.SetMapIndex(kv, elem)
		}
		rv.Set(m)
		return nil
	case reflect.Struct:
		cur, err := newObjectCursor(n, path)
		if err != nil {
			return err
		}
		idx := fields.Of(t)
		for {
			key, ok := cur.NextKey()
			if !ok {
				break
			}
			vn, err := cur.Value()
			if err != nil {
				return err
			}
			f, known := idx.Lookup(key)
			if !known {
				continue // unknown keys are ignored
			}
			fv := fieldByIndexAlloc(rv, f.Index)
			if err := decodeValue(vn, fv, childPath(path, key)); err != nil {
				return err
			}
		}
		return nil
	}
	return newError(CodeUnsupportedType, path, "cannot decode into %s", t)
}

func decodeChar(n *dom.Node, rv reflect.Value, path string) error {
	s, err := n.Str()
	if err != nil {
		return wrapDOMErr(err, path)
	}
	if utf8.RuneCountInString(s) != 1 {
		return newError(CodeInvalidCharacter, path, "expected a single character string")
	}
	r, _ := utf8.DecodeRuneInString(s)
	rv.SetInt(int64(r))
	return nil
}

// decodeAny produces the most general decoding based purely on the node's own
// type tag: nil, bool, int64, uint64, float64, string, []any or
// map[string]any.
func decodeAny(n *dom.Node, path string) (any, error) {
	switch n.Type() {
	case dom.TypeNull:
		return nil, nil
	case dom.TypeBool:
		b, _ := n.Bool()
		return b, nil
	case dom.TypeInt64:
		i, _ := n.Int64()
		return i, nil
	case dom.TypeUint64:
		u, _ := n.Uint64()
		return u, nil
	case dom.TypeDouble:
		f, _ := n.Float64()
		return f, nil
	case dom.TypeString:
		s, _ := n.Str()
		return s, nil
	case dom.TypeArray:
		elems, _ := n.Array()
		out := make([]any, len(elems))
		for i, el := range elems {
			v, err := decodeAny(el, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case dom.TypeObject:
		members, _ := n.Object()
		out := make(map[string]any, len(members))
		for _, m := range members {
			v, err := decodeAny(m.Value, childPath(path, m.Key))
			if err != nil {
				return nil, err
			}
			out[m.Key] = v
		}
		return out, nil
	}
	return nil, newError(CodeInvalidType, path, "unknown node type %s", n.Type())
}

func decodeEnum(n *dom.Node, rv reflect.Value, path string, variants map[string]VariantDef) error {
	switch n.Type() {
	case dom.TypeString:
		name, _ := n.Str()
		v, ok := variants[name]
		if !ok {
			return newError(CodeInvalidEnum, path, "unknown variant %q for %s", name, rv.Type())
		}
		if v.Kind != UnitVariant {
			return newError(CodeInvalidEnum, path, "variant %q carries a payload and cannot be decoded from a bare string", name)
		}
		rv.Set(reflect.Zero(v.Type))
		return nil
	case dom.TypeObject:
		members, _ := n.Object()
		if len(members) != 1 {
			return newError(CodeInvalidEnum, path, "expected an object with a single key for enum, got %d keys", len(members))
		}
		name, payload := members[0].Key, members[0].Value
		v, ok := variants[name]
		if !ok {
			return newError(CodeInvalidEnum, path, "unknown variant %q for %s", name, rv.Type())
		}
		if v.Kind == UnitVariant {
			return newError(CodeInvalidEnum, path, "expected a string for unit variant, got an object key")
		}
		pv := reflect.New(v.Type).Elem()
		vpath := childPath(path, name)
		switch v.Kind {
		case TupleVariant:
			if err := decodeTuplePayload(payload, pv, vpath); err != nil {
				return err
			}
		default: // newtype and struct payloads decode as the variant type itself
			if err := decodeValue(payload, pv, vpath); err != nil {
				return err
			}
		}
		rv.Set(pv)
		return nil
	}
	return newError(CodeInvalidEnum, path, "expected a string or object for enum, got %s", n.Type())
}

func decodeTuplePayload(n *dom.Node, rv reflect.Value, path string) error {
	elems, err := n.Array()
	if err != nil {
		return wrapDOMErr(err, path)
	}
	fs := tupleFields(rv.Type())
	if len(elems) != len(fs) {
		return newError(CodeInvalidType, path, "expected %d tuple elements, got %d", len(fs), len(elems))
	}
	for i, sf := range fs {
		if err := decodeValue(elems[i], rv.FieldByIndex(sf.Index), indexPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

// fieldByIndexAlloc walks a promoted field path, allocating nil embedded
// pointers along the way.
func fieldByIndexAlloc(rv reflect.Value, index []int) reflect.Value {
	for _, i := range index {
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				rv.Set(reflect.New(rv.Type().Elem()))
			}
			rv = rv.Elem()
		}
		rv = rv.Field(i)
	}
	return rv
}
