package fields

import (
	"reflect"
	"testing"
)

type base struct {
	ID     int    `json:"id"`
	Secret string `json:"-"`
}

type record struct {
	base
	Name    string `json:"name"`
	Note    string `json:"note,omitempty"`
	NoTag   int
	skipped bool
}

func TestOf_TagResolution(t *testing.T) {
	s := Of(reflect.TypeOf(record{}))
	f, ok := s.Lookup("name")
	if !ok || f.OmitEmpty {
		t.Fatalf("name: %+v, %v", f, ok)
	}
	f, ok = s.Lookup("note")
	if !ok || !f.OmitEmpty {
		t.Fatalf("note should be omitempty: %+v, %v", f, ok)
	}
	if _, ok = s.Lookup("NoTag"); !ok {
		t.Fatalf("untagged exported field should use its Go name")
	}
	if _, ok = s.Lookup("skipped"); ok {
		t.Fatalf("unexported field must not be indexed")
	}
	if _, ok = s.Lookup("-"); ok {
		t.Fatalf("json:\"-\" field must not be indexed")
	}
	if _, ok = s.Lookup("Secret"); ok {
		t.Fatalf("json:\"-\" field must not be indexed under its Go name")
	}
}

func TestOf_EmbeddedPromotion(t *testing.T) {
	s := Of(reflect.TypeOf(record{}))
	f, ok := s.Lookup("id")
	if !ok {
		t.Fatalf("promoted field not indexed")
	}
	if len(f.Index) != 2 {
		t.Fatalf("promoted field index path = %v", f.Index)
	}
	// The embedded struct itself is not a wire field.
	if _, ok = s.Lookup("base"); ok {
		t.Fatalf("embedded container must not be indexed")
	}
}

func TestOf_ShadowedFieldFirstWins(t *testing.T) {
	type inner struct {
		Name string `json:"name"`
	}
	type outer struct {
		inner
		Name string `json:"name"`
	}
	s := Of(reflect.TypeOf(outer{}))
	f, ok := s.Lookup("name")
	if !ok {
		t.Fatalf("name not indexed")
	}
	if len(f.Index) != 1 {
		t.Fatalf("outer field should shadow the promoted one, index = %v", f.Index)
	}
	if len(s.List) != 1 {
		t.Fatalf("duplicate wire name indexed twice: %v", s.List)
	}
}

func TestOf_Cached(t *testing.T) {
	t1 := reflect.TypeOf(record{})
	if Of(t1) != Of(t1) {
		t.Fatalf("index not cached per type")
	}
}

func TestOf_EmbeddedPointer(t *testing.T) {
	type leaf struct {
		V int `json:"v"`
	}
	type holder struct {
		*leaf
		W int `json:"w"`
	}
	s := Of(reflect.TypeOf(holder{}))
	if _, ok := s.Lookup("v"); !ok {
		t.Fatalf("field promoted through pointer not indexed")
	}
	if _, ok := s.Lookup("w"); !ok {
		t.Fatalf("plain field missing")
	}
}
