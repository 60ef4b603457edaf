package dombind_test

import (
	"math"
	"testing"

	"github.com/dombind/dombind"
	"github.com/dombind/dombind/builder"
	"github.com/dombind/dombind/dom"
)

func TestEncode_Struct(t *testing.T) {
	out, err := dombind.Encode(person{Name: "Bob", Age: 25, Active: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `{"name":"Bob","age":25,"active":true}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEncode_Slice(t *testing.T) {
	out, err := dombind.Encode([]int{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `[1,2,3,4,5]` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEncode_Nested(t *testing.T) {
	type inner struct {
		Values []float64 `json:"values"`
	}
	type outer struct {
		Label string `json:"label"`
		Data  inner  `json:"data"`
	}
	out, err := dombind.Encode(outer{Label: "x", Data: inner{Values: []float64{1.5, 2}}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `{"label":"x","data":{"values":[1.5,2.0]}}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEncode_MapSortedKeys(t *testing.T) {
	m := map[string]int{"zebra": 1, "apple": 2, "mango": 3}
	out, err := dombind.Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `{"apple":2,"mango":3,"zebra":1}` {
		t.Fatalf("map keys not sorted: %s", out)
	}
}

func TestEncode_NilAndEmpty(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{(*int)(nil), "null"},
		{[]int(nil), "null"},
		{map[string]int(nil), "null"},
		{[]int{}, "[]"},
		{map[string]int{}, "{}"},
		{struct{}{}, "{}"},
	}
	for _, c := range cases {
		out, err := dombind.Encode(c.in)
		if err != nil {
			t.Fatalf("Encode(%#v): %v", c.in, err)
		}
		if out != c.want {
			t.Fatalf("Encode(%#v) = %s, want %s", c.in, out, c.want)
		}
	}
}

func TestEncode_PointerDereference(t *testing.T) {
	age := 30
	type rec struct {
		Age *int `json:"age"`
	}
	out, err := dombind.Encode(rec{Age: &age})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `{"age":30}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEncode_OmitEmpty(t *testing.T) {
	type rec struct {
		Name  string   `json:"name"`
		Note  string   `json:"note,omitempty"`
		Tags  []string `json:"tags,omitempty"`
		Count int      `json:"count,omitempty"`
	}
	out, err := dombind.Encode(rec{Name: "a"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `{"name":"a"}` {
		t.Fatalf("empty fields not omitted: %s", out)
	}
	out, err = dombind.Encode(rec{Name: "a", Note: "n", Tags: []string{"t"}, Count: 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `{"name":"a","note":"n","tags":["t"],"count":1}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEncode_ByteSliceAsNumbers(t *testing.T) {
	out, err := dombind.Encode([]byte{0, 127, 255})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `[0,127,255]` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEncode_NonFiniteRejected(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := dombind.Encode(f)
		if dombind.CodeOf(err) != dombind.CodeNonFinite {
			t.Fatalf("Encode(%v): expected non_finite_number, got %v", f, err)
		}
	}
	// The same rule holds deep inside containers.
	_, err := dombind.Encode(map[string][]float64{"xs": {1, math.NaN()}})
	if dombind.CodeOf(err) != dombind.CodeNonFinite {
		t.Fatalf("expected non_finite_number, got %v", err)
	}
}

func TestEncode_BoundaryIntegers(t *testing.T) {
	out, err := dombind.Encode([]any{int64(math.MinInt64), int64(math.MaxInt64), uint64(math.MaxUint64)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `[-9223372036854775808,9223372036854775807,18446744073709551615]` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEncode_StringEscaping(t *testing.T) {
	out, err := dombind.Encode("say \"hi\"\nbye")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `"say \"hi\"\nbye"` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEncode_Char(t *testing.T) {
	out, err := dombind.Encode(dombind.Char('A'))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `"A"` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEncode_FixedArray(t *testing.T) {
	out, err := dombind.Encode([3]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `["a","b","c"]` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEncode_UnsupportedType(t *testing.T) {
	_, err := dombind.Encode(make(chan int))
	if dombind.CodeOf(err) != dombind.CodeUnsupportedType {
		t.Fatalf("expected unsupported_type, got %v", err)
	}
	_, err = dombind.Encode(map[int]string{1: "a"})
	if dombind.CodeOf(err) != dombind.CodeUnsupportedType {
		t.Fatalf("expected unsupported_type for non-string map key, got %v", err)
	}
}

func TestEncodeTo_BuilderReuse(t *testing.T) {
	b := builder.New()
	if err := dombind.EncodeTo(b, 1); err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}
	b.AppendRaw("\n")
	if err := dombind.EncodeTo(b, 2); err != nil {
		t.Fatalf("EncodeTo: %v", err)
	}
	if got := b.String(); got != "1\n2" {
		t.Fatalf("unexpected output: %s", got)
	}
}

func TestEncodeWithCapacity(t *testing.T) {
	out, err := dombind.EncodeWithCapacity([]int{1, 2, 3}, 4)
	if err != nil {
		t.Fatalf("EncodeWithCapacity: %v", err)
	}
	if out != `[1,2,3]` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestEncode_NodeField(t *testing.T) {
	type envelope struct {
		Kind string    `json:"kind"`
		Body *dom.Node `json:"body"`
	}
	src := `{"kind":"raw","body":{"anything":[1,2,3]}}`
	e, err := dombind.DecodeBytes[envelope]([]byte(src))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	out, err := dombind.Encode(e)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != src {
		t.Fatalf("borrowed subtree did not round trip: %s", out)
	}

	out, err = dombind.Encode(envelope{Kind: "x"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `{"kind":"x","body":null}` {
		t.Fatalf("nil node should encode as null: %s", out)
	}

	_, err = dombind.Encode(envelope{Kind: "x", Body: dom.Double(math.NaN())})
	if dombind.CodeOf(err) != dombind.CodeNonFinite {
		t.Fatalf("expected non_finite_number, got %v", err)
	}
}

func TestEncode_Value(t *testing.T) {
	v := dombind.ObjectValue(
		dombind.Field{Key: "id", Value: dombind.Uint64Value(7)},
		dombind.Field{Key: "ratio", Value: dombind.Float64Value(0.5)},
		dombind.Field{Key: "items", Value: dombind.ArrayValue(dombind.NullValue(), dombind.BoolValue(true))},
	)
	out, err := dombind.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `{"id":7,"ratio":0.5,"items":[null,true]}` {
		t.Fatalf("unexpected output: %s", out)
	}
	_, err = dombind.Encode(dombind.Float64Value(math.Inf(1)))
	if dombind.CodeOf(err) != dombind.CodeNonFinite {
		t.Fatalf("expected non_finite_number, got %v", err)
	}
}
