package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
)

// maxNesting bounds recursion while building the tree, so an adversarially
// deep document fails with an error instead of exhausting the stack. The
// limit is far above the 128-level ceiling the Value converter enforces; the
// parser only guards the process, not the data model.
const maxNesting = 10000

// Parse builds a Node tree from a single JSON document. Trailing data after
// the first value is an error, as is empty input.
func Parse(b []byte) (*Node, error) { return ParseReader(bytes.NewReader(b)) }

// ParseReader is Parse over an io.Reader.
func ParseReader(r io.Reader) (*Node, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	n, err := parseValue(dec, 0)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dom: empty input")
		}
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("dom: trailing data after first JSON value")
	}
	return n, nil
}

func parseValue(dec *j.Decoder, depth int) (*Node, error) {
	if depth > maxNesting {
		return nil, fmt.Errorf("dom: nesting depth exceeds maximum of %d", maxNesting)
	}
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return parseObject(dec, depth)
		case '[':
			return parseArray(dec, depth)
		}
		return nil, fmt.Errorf("dom: unexpected delimiter %q", v.String())
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case j.Number:
		return numberNode(string(v))
	case float64:
		return Double(v), nil
	case nil:
		return Null(), nil
	}
	return nil, fmt.Errorf("dom: unexpected token %v", tok)
}

func parseArray(dec *j.Decoder, depth int) (*Node, error) {
	var elems []*Node
	for dec.More() {
		child, err := parseValue(dec, depth+1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, child)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, err
	}
	return NewArray(elems...), nil
}

func parseObject(dec *j.Decoder, depth int) (*Node, error) {
	var members []Member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("dom: object key is %T, not a string", keyTok)
		}
		val, err := parseValue(dec, depth+1)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return NewObject(members...), nil
}

// numberNode classifies a JSON number literal the way simd parsers do:
// integer text fitting int64 becomes Int64, text fitting only uint64 becomes
// UInt64, everything else becomes Double.
func numberNode(text string) (*Node, error) {
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int64(i), nil
		}
		if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return Uint64(u), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid number %q: %w", text, err)
	}
	return Double(f), nil
}
