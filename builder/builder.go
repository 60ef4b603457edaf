// Package builder provides an append-only JSON output buffer with structural
// token helpers. The builder keeps no separator state: every append is
// unconditional and the caller alone decides when commas and colons are
// emitted.
package builder

import (
	"strconv"
	"unicode/utf8"
)

const defaultCapacity = 1024

// Builder accumulates JSON text in an append-only byte buffer.
// A Builder is owned by a single writer; concurrent use must be serialized by
// the caller.
type Builder struct {
	buf []byte
}

// New returns a Builder with the default initial capacity (1KB).
func New() *Builder { return NewWithCapacity(defaultCapacity) }

// NewWithCapacity returns a Builder with the given initial capacity in bytes.
func NewWithCapacity(capacity int) *Builder {
	if capacity < 0 {
		capacity = 0
	}
	return &Builder{buf: make([]byte, 0, capacity)}
}

// StartObject appends the opening brace of an object.
func (b *Builder) StartObject() { b.buf = append(b.buf, '{') }

// EndObject appends the closing brace of an object.
func (b *Builder) EndObject() { b.buf = append(b.buf, '}') }

// StartArray appends the opening bracket of an array.
func (b *Builder) StartArray() { b.buf = append(b.buf, '[') }

// EndArray appends the closing bracket of an array.
func (b *Builder) EndArray() { b.buf = append(b.buf, ']') }

// AppendComma appends a comma separator.
func (b *Builder) AppendComma() { b.buf = append(b.buf, ',') }

// AppendColon appends a colon separator.
func (b *Builder) AppendColon() { b.buf = append(b.buf, ':') }

// AppendNull appends the null literal.
func (b *Builder) AppendNull() { b.buf = append(b.buf, "null"...) }

// AppendBool appends true or false.
func (b *Builder) AppendBool(v bool) { b.buf = strconv.AppendBool(b.buf, v) }

// AppendInt64 appends a signed integer in decimal form.
func (b *Builder) AppendInt64(v int64) { b.buf = strconv.AppendInt(b.buf, v, 10) }

// AppendUint64 appends an unsigned integer in decimal form.
func (b *Builder) AppendUint64(v uint64) { b.buf = strconv.AppendUint(b.buf, v, 10) }

// AppendFloat64 appends a floating-point number in its shortest round-trip
// form. Integral values keep a trailing ".0" so they stay distinguishable
// from integers when re-parsed. The builder does not validate finiteness;
// callers must reject NaN and infinities before appending.
func (b *Builder) AppendFloat64(v float64) {
	start := len(b.buf)
	b.buf = strconv.AppendFloat(b.buf, v, 'g', -1, 64)
	for _, c := range b.buf[start:] {
		if c == '.' || c == 'e' || c == 'E' {
			return
		}
	}
	b.buf = append(b.buf, '.', '0')
}

// AppendString appends s with JSON escaping and surrounding double quotes.
// Bytes that are not valid UTF-8 are replaced with U+FFFD, so string appends
// never produce invalid output.
func (b *Builder) AppendString(s string) {
	b.buf = append(b.buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				b.buf = append(b.buf, c)
				i++
				continue
			}
			switch c {
			case '"', '\\':
				b.buf = append(b.buf, '\\', c)
			case '\n':
				b.buf = append(b.buf, '\\', 'n')
			case '\r':
				b.buf = append(b.buf, '\\', 'r')
			case '\t':
				b.buf = append(b.buf, '\\', 't')
			case '\b':
				b.buf = append(b.buf, '\\', 'b')
			case '\f':
				b.buf = append(b.buf, '\\', 'f')
			default:
				const hex = "0123456789abcdef"
				b.buf = append(b.buf, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.buf = utf8.AppendRune(b.buf, utf8.RuneError)
			i++
			continue
		}
		b.buf = append(b.buf, s[i:i+size]...)
		i += size
	}
	b.buf = append(b.buf, '"')
}

// AppendRaw appends s without escaping. The caller must ensure the content is
// valid JSON at the current position.
func (b *Builder) AppendRaw(s string) { b.buf = append(b.buf, s...) }

// Clear resets the buffer to empty while retaining allocated capacity.
func (b *Builder) Clear() { b.buf = b.buf[:0] }

// Len returns the number of bytes written so far.
func (b *Builder) Len() int { return len(b.buf) }

// String returns a copy of the written JSON text.
func (b *Builder) String() string { return string(b.buf) }

// Bytes returns the written JSON bytes. The slice aliases the builder's
// internal buffer and is invalidated by further appends or Clear.
func (b *Builder) Bytes() []byte { return b.buf }

// ValidUTF8 reports whether the written content is valid UTF-8.
func (b *Builder) ValidUTF8() bool { return utf8.Valid(b.buf) }
