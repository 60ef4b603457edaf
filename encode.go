package dombind

import (
	"math"
	"reflect"
	"sort"

	"github.com/dombind/dombind/builder"
	"github.com/dombind/dombind/dom"
	"github.com/dombind/dombind/internal/fields"
)

// encodeValue emits the JSON encoding of rv into b. Single pass, no
// intermediate tree; first-element state is local to each container scope.
func encodeValue(b *builder.Builder, rv reflect.Value, path string) error {
	if !rv.IsValid() {
		b.AppendNull()
		return nil
	}
	t := rv.Type()
	switch t {
	case valueType:
		return encodeTagged(b, rv.Interface().(Value), path)
	case charType:
		b.AppendString(string(rune(rv.Int())))
		return nil
	case nodeType:
		// Borrowed subtrees round-trip through the tagged converter, which
		// carries the depth bound and non-finite checks.
		n := rv.Interface().(*dom.Node)
		if n == nil {
			b.AppendNull()
			return nil
		}
		v, err := fromNode(n, path, 0)
		if err != nil {
			return err
		}
		return encodeTagged(b, v, path)
	}
	if enc, ok := codecEncoderFor(t); ok {
		return enc(b, rv.Interface())
	}
	if v, ok := variantFor(t); ok {
		return encodeEnum(b, rv, v, path)
	}
	return encodeDispatch(b, rv, path)
}

// encodeDispatch is encodeValue without the registry lookups. Variant
// emitters call it directly so a newtype payload does not resolve to its own
// variant again.
func encodeDispatch(b *builder.Builder, rv reflect.Value, path string) error {
	switch rv.Kind() {
	case reflect.Bool:
		b.AppendBool(rv.Bool())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.AppendInt64(rv.Int())
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.AppendUint64(rv.Uint())
		return nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return newError(CodeNonFinite, path, "cannot serialize non-finite float: %v", f)
		}
		b.AppendFloat64(f)
		return nil
	case reflect.String:
		b.AppendString(rv.String())
		return nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			b.AppendNull()
			return nil
		}
		return encodeValue(b, rv.Elem(), path)
	case reflect.Slice:
		if rv.IsNil() {
			b.AppendNull()
			return nil
		}
		return encodeArray(b, rv, path)
	case reflect.Array:
		return encodeArray(b, rv, path)
	case reflect.Map:
		if rv.IsNil() {
			b.AppendNull()
			return nil
		}
		return encodeMap(b, rv, path)
	case reflect.Struct:
		b.StartObject()
		if err := encodeStructFields(b, rv, path); err != nil {
			return err
		}
		b.EndObject()
		return nil
	}
	return newError(CodeUnsupportedType, path, "cannot serialize %s", rv.Type())
}

func encodeArray(b *builder.Builder, rv reflect.Value, path string) error {
	b.StartArray()
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			b.AppendComma()
		}
		if err := encodeValue(b, rv.Index(i), indexPath(path, i)); err != nil {
			return err
		}
	}
	b.EndArray()
	return nil
}

func encodeMap(b *builder.Builder, rv reflect.Value, path string) error {
	if rv.Type().Key().Kind() != reflect.String {
		return newError(CodeUnsupportedType, path, "map key type %s is not a string", rv.Type().Key())
	}
	keys := make([]string, 0, rv.Len())
	byKey := make(map[string]reflect.Value, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		byKey[k] = iter.Value()
	}
	sort.Strings(keys) // deterministic output across map iteration orders
	b.StartObject()
	for i, k := range keys {
		if i > 0 {
			b.AppendComma()
		}
		b.AppendString(k)
		b.AppendColon()
		if err := encodeValue(b, byKey[k], childPath(path, k)); err != nil {
			return err
		}
	}
	b.EndObject()
	return nil
}

func encodeStructFields(b *builder.Builder, rv reflect.Value, path string) error {
	first := true
	for _, f := range fields.Of(rv.Type()).List {
		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			continue // promoted through a nil embedded pointer
		}
		if f.OmitEmpty && isEmptyValue(fv) {
			continue
		}
		if !first {
			b.AppendComma()
		}
		first = false
		b.AppendString(f.Name)
		b.AppendColon()
		if err := encodeValue(b, fv, childPath(path, f.Name)); err != nil {
			return err
		}
	}
	return nil
}

func encodeEnum(b *builder.Builder, rv reflect.Value, v VariantDef, path string) error {
	switch v.Kind {
	case UnitVariant:
		b.AppendString(v.Name)
		return nil
	case NewtypeVariant:
		b.StartObject()
		b.AppendString(v.Name)
		b.AppendColon()
		if err := encodeDispatch(b, rv, childPath(path, v.Name)); err != nil {
			return err
		}
		b.EndObject()
		return nil
	case TupleVariant:
		b.StartObject()
		b.AppendString(v.Name)
		b.AppendColon()
		b.StartArray()
		vpath := childPath(path, v.Name)
		for i, sf := range tupleFields(rv.Type()) {
			if i > 0 {
				b.AppendComma()
			}
			if err := encodeValue(b, rv.FieldByIndex(sf.Index), indexPath(vpath, i)); err != nil {
				return err
			}
		}
		b.EndArray()
		b.EndObject()
		return nil
	case StructVariant:
		b.StartObject()
		b.AppendString(v.Name)
		b.AppendColon()
		b.StartObject()
		if err := encodeStructFields(b, rv, childPath(path, v.Name)); err != nil {
			return err
		}
		b.EndObject()
		b.EndObject()
		return nil
	}
	return newError(CodeInvalidEnum, path, "invalid variant kind for %s", rv.Type())
}

func encodeTagged(b *builder.Builder, v Value, path string) error {
	switch v.kind {
	case KindNull:
		b.AppendNull()
	case KindBool:
		b.AppendBool(v.b)
	case KindInt64:
		b.AppendInt64(v.i)
	case KindUint64:
		b.AppendUint64(v.u)
	case KindFloat64:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return newError(CodeNonFinite, path, "cannot serialize non-finite float: %v", v.f)
		}
		b.AppendFloat64(v.f)
	case KindString:
		b.AppendString(v.s)
	case KindArray:
		b.StartArray()
		for i, item := range v.arr {
			if i > 0 {
				b.AppendComma()
			}
			if err := encodeTagged(b, item, indexPath(path, i)); err != nil {
				return err
			}
		}
		b.EndArray()
	case KindObject:
		b.StartObject()
		for i, f := range v.obj {
			if i > 0 {
				b.AppendComma()
			}
			b.AppendString(f.Key)
			b.AppendColon()
			if err := encodeTagged(b, f.Value, childPath(path, f.Key)); err != nil {
				return err
			}
		}
		b.EndObject()
	}
	return nil
}

// isEmptyValue mirrors the conventional omitempty rule.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
