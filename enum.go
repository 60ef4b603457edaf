package dombind

import (
	"fmt"
	"reflect"
	"sync"
)

// VariantKind classifies how a variant's payload is laid out on the wire.
type VariantKind uint8

const (
	// UnitVariant encodes as a bare string holding the variant name.
	UnitVariant VariantKind = iota
	// NewtypeVariant encodes as {"Name":<value>} where the value is the
	// variant type's own encoding.
	NewtypeVariant
	// TupleVariant encodes as {"Name":[<fields>...]} with the variant
	// struct's exported fields in declaration order.
	TupleVariant
	// StructVariant encodes as {"Name":{<fields>...}} with the variant
	// struct's usual object encoding.
	StructVariant
)

func (k VariantKind) String() string {
	switch k {
	case UnitVariant:
		return "unit"
	case NewtypeVariant:
		return "newtype"
	case TupleVariant:
		return "tuple"
	case StructVariant:
		return "struct"
	}
	return "invalid"
}

// VariantDef describes one variant of a registered enum. Build definitions
// with Unit, Newtype, Tuple and Struct.
type VariantDef struct {
	Name string
	Kind VariantKind
	Type reflect.Type
}

// Unit declares a variant with no payload, encoded as the bare string name.
func Unit[V any](name string) VariantDef {
	return VariantDef{Name: name, Kind: UnitVariant, Type: typeOf[V]()}
}

// Newtype declares a variant whose payload is the variant value itself.
func Newtype[V any](name string) VariantDef {
	return VariantDef{Name: name, Kind: NewtypeVariant, Type: typeOf[V]()}
}

// Tuple declares a struct variant whose exported fields encode as an array.
func Tuple[V any](name string) VariantDef {
	return VariantDef{Name: name, Kind: TupleVariant, Type: typeOf[V]()}
}

// Struct declares a struct variant whose fields encode as an object.
func Struct[V any](name string) VariantDef {
	return VariantDef{Name: name, Kind: StructVariant, Type: typeOf[V]()}
}

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

var (
	enumMu         sync.RWMutex
	enumsByIface   = map[reflect.Type]map[string]VariantDef{}
	variantsByType = map[reflect.Type]VariantDef{}
)

// RegisterEnum registers the interface type E as an enum with the given
// variants. Every variant type must implement E. Registration normally runs
// from an init function; invalid registrations panic.
func RegisterEnum[E any](variants ...VariantDef) {
	iface := typeOf[E]()
	if iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("dombind: RegisterEnum: %s is not an interface type", iface))
	}
	if len(variants) == 0 {
		panic(fmt.Sprintf("dombind: RegisterEnum: %s has no variants", iface))
	}
	enumMu.Lock()
	defer enumMu.Unlock()
	if _, dup := enumsByIface[iface]; dup {
		panic(fmt.Sprintf("dombind: enum %s already registered", iface))
	}
	named := make(map[string]VariantDef, len(variants))
	for _, v := range variants {
		if v.Name == "" {
			panic(fmt.Sprintf("dombind: enum %s: variant with empty name", iface))
		}
		if v.Type == nil {
			panic(fmt.Sprintf("dombind: enum %s: variant %q has no type", iface, v.Name))
		}
		if !v.Type.Implements(iface) {
			panic(fmt.Sprintf("dombind: variant %q (%s) does not implement %s", v.Name, v.Type, iface))
		}
		if (v.Kind == TupleVariant || v.Kind == StructVariant) && v.Type.Kind() != reflect.Struct {
			panic(fmt.Sprintf("dombind: %s variant %q must be a struct type, got %s", v.Kind, v.Name, v.Type))
		}
		if _, dup := named[v.Name]; dup {
			panic(fmt.Sprintf("dombind: enum %s: duplicate variant name %q", iface, v.Name))
		}
		if _, dup := variantsByType[v.Type]; dup {
			panic(fmt.Sprintf("dombind: variant type %s registered twice", v.Type))
		}
		named[v.Name] = v
		variantsByType[v.Type] = v
	}
	enumsByIface[iface] = named
}

func enumFor(t reflect.Type) (map[string]VariantDef, bool) {
	enumMu.RLock()
	m, ok := enumsByIface[t]
	enumMu.RUnlock()
	return m, ok
}

func variantFor(t reflect.Type) (VariantDef, bool) {
	enumMu.RLock()
	v, ok := variantsByType[t]
	enumMu.RUnlock()
	return v, ok
}

// tupleFields lists a tuple variant's exported fields in declaration order.
func tupleFields(t reflect.Type) []reflect.StructField {
	out := make([]reflect.StructField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if sf := t.Field(i); sf.IsExported() {
			out = append(out, sf)
		}
	}
	return out
}
