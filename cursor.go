package dombind

import (
	"github.com/dombind/dombind/dom"
)

// ObjectCursor iterates the members of an object node as a two-phase
// key/value protocol: NextKey advances the cursor and parks the member's
// value, Value takes the parked value. Requesting a value before requesting
// the next key is a protocol misuse and fails loudly rather than silently
// substituting a default.
type ObjectCursor struct {
	members []dom.Member
	idx     int
	pending *dom.Node
	path    string
}

// NewObjectCursor opens a cursor over an object node.
func NewObjectCursor(n *dom.Node) (*ObjectCursor, error) {
	return newObjectCursor(n, "")
}

func newObjectCursor(n *dom.Node, path string) (*ObjectCursor, error) {
	members, err := n.Object()
	if err != nil {
		return nil, wrapDOMErr(err, path)
	}
	return &ObjectCursor{members: members, path: path}, nil
}

// NextKey returns the next member key, or false when the object is exhausted.
func (c *ObjectCursor) NextKey() (string, bool) {
	if c.idx >= len(c.members) {
		c.pending = nil
		return "", false
	}
	m := c.members[c.idx]
	c.idx++
	c.pending = m.Value
	return m.Key, true
}

// Value returns the node parked by the preceding NextKey call. Each key's
// value can be taken once.
func (c *ObjectCursor) Value() (*dom.Node, error) {
	if c.pending == nil {
		return nil, newError(CodeProtocolMisuse, c.path, "value requested before key")
	}
	n := c.pending
	c.pending = nil
	return n, nil
}
