package dombind_test

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/dombind/dombind"
	"github.com/dombind/dombind/builder"
	"github.com/dombind/dombind/dom"
)

// hexID is serialized as a 0x-prefixed hex string instead of a number.
type hexID uint32

func init() {
	dombind.RegisterCodec[hexID](
		func(b *builder.Builder, id hexID) error {
			b.AppendString(fmt.Sprintf("0x%08x", uint32(id)))
			return nil
		},
		func(n *dom.Node) (hexID, error) {
			s, err := n.Str()
			if err != nil {
				return 0, err
			}
			raw, ok := strings.CutPrefix(s, "0x")
			if !ok {
				return 0, fmt.Errorf("hex id %q lacks 0x prefix", s)
			}
			u, err := strconv.ParseUint(raw, 16, 32)
			if err != nil {
				return 0, fmt.Errorf("hex id %q: %w", s, err)
			}
			return hexID(u), nil
		},
	)
}

func TestCodec_RoundTrip(t *testing.T) {
	out, err := dombind.Encode(hexID(0xdeadbeef))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `"0xdeadbeef"` {
		t.Fatalf("unexpected output: %s", out)
	}
	id, err := dombind.Decode[hexID](parse(t, out))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if id != 0xdeadbeef {
		t.Fatalf("round trip lost value: %x", id)
	}
}

func TestCodec_InsideStruct(t *testing.T) {
	type device struct {
		ID   hexID  `json:"id"`
		Name string `json:"name"`
	}
	d, err := dombind.Decode[device](parse(t, `{"id":"0x0000002a","name":"probe"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.ID != 42 || d.Name != "probe" {
		t.Fatalf("unexpected result: %+v", d)
	}
	out, err := dombind.Encode(d)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out != `{"id":"0x0000002a","name":"probe"}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestCodec_DecodeErrorWrapped(t *testing.T) {
	_, err := dombind.Decode[hexID](parse(t, `"not-hex"`))
	if dombind.CodeOf(err) != dombind.CodeInvalidType {
		t.Fatalf("expected invalid_type wrapper, got %v", err)
	}
	_, err = dombind.Decode[hexID](parse(t, `42`))
	if dombind.CodeOf(err) != dombind.CodeInvalidType {
		t.Fatalf("expected invalid_type for number node, got %v", err)
	}
}
