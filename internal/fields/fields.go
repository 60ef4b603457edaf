// Package fields indexes the encodable and decodable fields of struct types.
// Indexes are cached per type.
package fields

import (
	"reflect"
	"strings"
	"sync"
)

// Field describes one struct field visible to the wire format.
type Field struct {
	Name      string
	Index     []int
	OmitEmpty bool
}

// Struct is the cached field index of a struct type. List preserves field
// declaration order.
type Struct struct {
	List   []Field
	byName map[string]int
}

// Lookup finds a field by its wire name.
func (s *Struct) Lookup(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.List[i], true
}

var cache sync.Map // reflect.Type -> *Struct

// Of returns the field index for a struct type.
func Of(t reflect.Type) *Struct {
	if v, ok := cache.Load(t); ok {
		return v.(*Struct)
	}
	s := index(t)
	actual, _ := cache.LoadOrStore(t, s)
	return actual.(*Struct)
}

func index(t reflect.Type) *Struct {
	s := &Struct{byName: map[string]int{}}
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && sf.Tag.Get("json") == "" {
			// Embedded container itself; its promoted fields are listed
			// separately by VisibleFields.
			k := sf.Type.Kind()
			if k == reflect.Struct || (k == reflect.Pointer && sf.Type.Elem().Kind() == reflect.Struct) {
				continue
			}
		}
		name, omitEmpty := resolveKey(sf)
		if name == "-" {
			continue
		}
		if _, dup := s.byName[name]; dup {
			// Shallower field registered first wins; VisibleFields lists
			// fields before their promoted shadows.
			continue
		}
		s.byName[name] = len(s.List)
		s.List = append(s.List, Field{Name: name, Index: sf.Index, OmitEmpty: omitEmpty})
	}
	return s
}

// resolveKey resolves a struct field's wire key: json tag name > field name;
// "-" disables the field.
func resolveKey(sf reflect.StructField) (string, bool) {
	jt := sf.Tag.Get("json")
	if jt == "" {
		return sf.Name, false
	}
	if jt == "-" {
		return "-", false
	}
	parts := strings.Split(jt, ",")
	omitEmpty := false
	for _, p := range parts[1:] {
		if p == "omitempty" {
			omitEmpty = true
		}
	}
	if parts[0] == "" {
		return sf.Name, omitEmpty
	}
	return parts[0], omitEmpty
}
