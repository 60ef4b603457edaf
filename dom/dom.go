package dom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type identifies the JSON type of a Node.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeInt64
	TypeUint64
	TypeDouble
	TypeString
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt64:
		return "int64"
	case TypeUint64:
		return "uint64"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	}
	return "invalid"
}

// TypeError reports an accessor request that does not match the node's actual
// type.
type TypeError struct {
	Want Type
	Got  Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("node is %s, not %s", e.Got, e.Want)
}

// RangeError reports an integer accessor whose node value does not fit the
// requested 64-bit representation.
type RangeError struct {
	Value string
	Want  Type
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("value %s out of range for %s", e.Value, e.Want)
}

// Member is a single key/value entry of an object node. Object preserves
// insertion order.
type Member struct {
	Key   string
	Value *Node
}

// Node is a read-only typed view into a parsed JSON tree. Nodes are immutable
// after construction and safe to share across goroutines.
type Node struct {
	typ Type
	b   bool
	i   int64
	u   uint64
	f   float64
	s   string
	arr []*Node
	obj []Member
}

// Null returns a null node.
func Null() *Node { return &Node{typ: TypeNull} }

// Bool returns a boolean node.
func Bool(v bool) *Node { return &Node{typ: TypeBool, b: v} }

// Int64 returns a signed integer node.
func Int64(v int64) *Node { return &Node{typ: TypeInt64, i: v} }

// Uint64 returns an unsigned integer node.
func Uint64(v uint64) *Node { return &Node{typ: TypeUint64, u: v} }

// Double returns a floating-point node.
func Double(v float64) *Node { return &Node{typ: TypeDouble, f: v} }

// String returns a string node.
func String(v string) *Node { return &Node{typ: TypeString, s: v} }

// NewArray returns an array node holding the given elements in order.
func NewArray(elems ...*Node) *Node { return &Node{typ: TypeArray, arr: elems} }

// NewObject returns an object node holding the given members in order. Keys
// are expected to be unique; NewObject does not re-validate this.
func NewObject(members ...Member) *Node { return &Node{typ: TypeObject, obj: members} }

// Type returns the node's type tag.
func (n *Node) Type() Type { return n.typ }

// IsNull reports whether the node is the JSON null value.
func (n *Node) IsNull() bool { return n.typ == TypeNull }

// Bool reads the node as a boolean.
func (n *Node) Bool() (bool, error) {
	if n.typ != TypeBool {
		return false, &TypeError{Want: TypeBool, Got: n.typ}
	}
	return n.b, nil
}

// Int64 reads the node as a signed 64-bit integer. Unsigned nodes are accepted
// when the value fits.
func (n *Node) Int64() (int64, error) {
	switch n.typ {
	case TypeInt64:
		return n.i, nil
	case TypeUint64:
		if n.u > math.MaxInt64 {
			return 0, &RangeError{Value: strconv.FormatUint(n.u, 10), Want: TypeInt64}
		}
		return int64(n.u), nil
	}
	return 0, &TypeError{Want: TypeInt64, Got: n.typ}
}

// Uint64 reads the node as an unsigned 64-bit integer. Signed nodes are
// accepted when non-negative.
func (n *Node) Uint64() (uint64, error) {
	switch n.typ {
	case TypeUint64:
		return n.u, nil
	case TypeInt64:
		if n.i < 0 {
			return 0, &RangeError{Value: strconv.FormatInt(n.i, 10), Want: TypeUint64}
		}
		return uint64(n.i), nil
	}
	return 0, &TypeError{Want: TypeUint64, Got: n.typ}
}

// Float64 reads the node as a double. Integer nodes widen.
func (n *Node) Float64() (float64, error) {
	switch n.typ {
	case TypeDouble:
		return n.f, nil
	case TypeInt64:
		return float64(n.i), nil
	case TypeUint64:
		return float64(n.u), nil
	}
	return 0, &TypeError{Want: TypeDouble, Got: n.typ}
}

// Str reads the node as a string.
func (n *Node) Str() (string, error) {
	if n.typ != TypeString {
		return "", &TypeError{Want: TypeString, Got: n.typ}
	}
	return n.s, nil
}

// Array returns the element nodes of an array node in order. The returned
// slice is owned by the node and must not be mutated.
func (n *Node) Array() ([]*Node, error) {
	if n.typ != TypeArray {
		return nil, &TypeError{Want: TypeArray, Got: n.typ}
	}
	return n.arr, nil
}

// Object returns the members of an object node in insertion order. The
// returned slice is owned by the node and must not be mutated.
func (n *Node) Object() ([]Member, error) {
	if n.typ != TypeObject {
		return nil, &TypeError{Want: TypeObject, Got: n.typ}
	}
	return n.obj, nil
}

// Len returns the number of elements or members of a container node, and 0
// for scalars.
func (n *Node) Len() int {
	switch n.typ {
	case TypeArray:
		return len(n.arr)
	case TypeObject:
		return len(n.obj)
	}
	return 0
}

// At resolves an RFC 6901 JSON Pointer relative to the node. The empty
// pointer returns the node itself.
func (n *Node) At(pointer string) (*Node, error) {
	if pointer == "" {
		return n, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("dom: pointer %q must be empty or start with '/'", pointer)
	}
	cur := n
	for _, tok := range strings.Split(pointer[1:], "/") {
		tok = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
		switch cur.typ {
		case TypeObject:
			var next *Node
			for _, m := range cur.obj {
				if m.Key == tok {
					next = m.Value
					break
				}
			}
			if next == nil {
				return nil, fmt.Errorf("dom: key %q not found", tok)
			}
			cur = next
		case TypeArray:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(cur.arr) {
				return nil, fmt.Errorf("dom: index %q out of bounds for array of %d", tok, len(cur.arr))
			}
			cur = cur.arr[idx]
		default:
			return nil, fmt.Errorf("dom: cannot descend into %s node with %q", cur.typ, tok)
		}
	}
	return cur, nil
}
