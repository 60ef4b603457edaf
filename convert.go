package dombind

import (
	"math"

	"github.com/dombind/dombind/dom"
)

// MaxNestingDepth is the ceiling on DOM nesting accepted by FromNode. It
// guards against stack overflow from adversarial inputs with extreme nesting
// (e.g. "[[[[...]]]]" repeated thousands of times).
const MaxNestingDepth = 128

// FromNode converts a DOM node into a generic Value, preserving element and
// key order. Conversion fails on nesting beyond MaxNestingDepth and on
// non-finite doubles.
func FromNode(n *dom.Node) (Value, error) { return fromNode(n, "", 0) }

func fromNode(n *dom.Node, path string, depth int) (Value, error) {
	if depth > MaxNestingDepth {
		return Value{}, newError(CodeDepthExceeded, path, "nesting depth exceeds maximum of %d", MaxNestingDepth)
	}
	switch n.Type() {
	case dom.TypeNull:
		return NullValue(), nil
	case dom.TypeBool:
		b, _ := n.Bool()
		return BoolValue(b), nil
	case dom.TypeInt64:
		i, _ := n.Int64()
		return Int64Value(i), nil
	case dom.TypeUint64:
		u, _ := n.Uint64()
		return Uint64Value(u), nil
	case dom.TypeDouble:
		f, _ := n.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, newError(CodeNonFinite, path, "cannot represent %v as a JSON number", f)
		}
		return Float64Value(f), nil
	case dom.TypeString:
		s, _ := n.Str()
		return StringValue(s), nil
	case dom.TypeArray:
		elems, _ := n.Array()
		items := make([]Value, len(elems))
		for i, el := range elems {
			v, err := fromNode(el, indexPath(path, i), depth+1)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return ArrayValue(items...), nil
	case dom.TypeObject:
		members, _ := n.Object()
		obj := make([]Field, len(members))
		for i, m := range members {
			v, err := fromNode(m.Value, childPath(path, m.Key), depth+1)
			if err != nil {
				return Value{}, err
			}
			obj[i] = Field{Key: m.Key, Value: v}
		}
		return ObjectValue(obj...), nil
	}
	return Value{}, newError(CodeInvalidType, path, "unknown node type %s", n.Type())
}
