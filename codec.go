package dombind

import (
	"reflect"
	"sync"

	"github.com/dombind/dombind/builder"
	"github.com/dombind/dombind/dom"
)

type codecEntry struct {
	encode func(*builder.Builder, any) error
	decode func(*dom.Node) (any, error)
}

var (
	codecMu sync.RWMutex
	codecs  = map[reflect.Type]codecEntry{}
)

// RegisterCodec installs a custom encode/decode pair for T, overriding the
// reflection-driven dispatch for that type on both sides. Either function may
// be nil to keep the default for that direction. Later registrations replace
// earlier ones.
func RegisterCodec[T any](encode func(*builder.Builder, T) error, decode func(*dom.Node) (T, error)) {
	t := typeOf[T]()
	var entry codecEntry
	if encode != nil {
		entry.encode = func(b *builder.Builder, v any) error { return encode(b, v.(T)) }
	}
	if decode != nil {
		entry.decode = func(n *dom.Node) (any, error) { return decode(n) }
	}
	codecMu.Lock()
	codecs[t] = entry
	codecMu.Unlock()
}

func codecEncoderFor(t reflect.Type) (func(*builder.Builder, any) error, bool) {
	codecMu.RLock()
	e, ok := codecs[t]
	codecMu.RUnlock()
	if !ok || e.encode == nil {
		return nil, false
	}
	return e.encode, true
}

func codecDecoderFor(t reflect.Type) (func(*dom.Node) (any, error), bool) {
	codecMu.RLock()
	e, ok := codecs[t]
	codecMu.RUnlock()
	if !ok || e.decode == nil {
		return nil, false
	}
	return e.decode, true
}
