package dom

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseYAML builds a Node tree from a YAML document. Mapping order is
// preserved. Scalars resolve through the YAML core schema; values that have
// no JSON representation (non-finite floats, custom tags) are errors.
func ParseYAML(b []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("dom: yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, errors.New("dom: empty input")
	}
	return yamlNode(doc.Content[0], 0)
}

func yamlNode(y *yaml.Node, depth int) (*Node, error) {
	if depth > maxNesting {
		return nil, fmt.Errorf("dom: nesting depth exceeds maximum of %d", maxNesting)
	}
	switch y.Kind {
	case yaml.AliasNode:
		return yamlNode(y.Alias, depth+1)
	case yaml.SequenceNode:
		elems := make([]*Node, 0, len(y.Content))
		for _, c := range y.Content {
			child, err := yamlNode(c, depth+1)
			if err != nil {
				return nil, err
			}
			elems = append(elems, child)
		}
		return NewArray(elems...), nil
	case yaml.MappingNode:
		members := make([]Member, 0, len(y.Content)/2)
		for i := 0; i+1 < len(y.Content); i += 2 {
			k := y.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("dom: yaml mapping key at line %d is not a scalar", k.Line)
			}
			v, err := yamlNode(y.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			members = append(members, Member{Key: k.Value, Value: v})
		}
		return NewObject(members...), nil
	case yaml.ScalarNode:
		return yamlScalar(y)
	}
	return nil, fmt.Errorf("dom: unsupported yaml node kind %d at line %d", y.Kind, y.Line)
}

func yamlScalar(y *yaml.Node) (*Node, error) {
	switch y.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(y.Value)
		if err != nil {
			return nil, fmt.Errorf("dom: yaml bool %q at line %d", y.Value, y.Line)
		}
		return Bool(b), nil
	case "!!int":
		if i, err := strconv.ParseInt(y.Value, 10, 64); err == nil {
			return Int64(i), nil
		}
		if u, err := strconv.ParseUint(y.Value, 10, 64); err == nil {
			return Uint64(u), nil
		}
		return nil, fmt.Errorf("dom: yaml integer %q out of range at line %d", y.Value, y.Line)
	case "!!float":
		f, err := strconv.ParseFloat(y.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("dom: yaml float %q has no JSON representation at line %d", y.Value, y.Line)
		}
		return Double(f), nil
	case "!!str", "!!timestamp":
		return String(y.Value), nil
	}
	return nil, fmt.Errorf("dom: unsupported yaml tag %s at line %d", y.Tag, y.Line)
}
