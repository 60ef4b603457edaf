package main

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/dombind/dombind"
)

// renameKeys rewrites every object key in the value according to mode.
// Renaming that would collapse two distinct keys into one is an error, since
// object keys must stay unique.
func renameKeys(v dombind.Value, mode string) (dombind.Value, error) {
	var mapper func(string) string
	switch mode {
	case "", "none":
		return v, nil
	case "snake":
		mapper = strcase.ToSnake
	case "camel":
		mapper = strcase.ToLowerCamel
	case "kebab":
		mapper = strcase.ToKebab
	default:
		return dombind.Value{}, fmt.Errorf("unknown rename mode %q", mode)
	}
	return mapKeys(v, mapper)
}

func mapKeys(v dombind.Value, mapper func(string) string) (dombind.Value, error) {
	switch v.Kind() {
	case dombind.KindArray:
		items := v.Items()
		out := make([]dombind.Value, len(items))
		for i, item := range items {
			mapped, err := mapKeys(item, mapper)
			if err != nil {
				return dombind.Value{}, err
			}
			out[i] = mapped
		}
		return dombind.ArrayValue(out...), nil
	case dombind.KindObject:
		fs := v.Fields()
		out := make([]dombind.Field, len(fs))
		seen := make(map[string]string, len(fs))
		for i, f := range fs {
			key := mapper(f.Key)
			if prev, dup := seen[key]; dup {
				return dombind.Value{}, fmt.Errorf("rename collapses keys %q and %q into %q", prev, f.Key, key)
			}
			seen[key] = f.Key
			mapped, err := mapKeys(f.Value, mapper)
			if err != nil {
				return dombind.Value{}, err
			}
			out[i] = dombind.Field{Key: key, Value: mapped}
		}
		return dombind.ObjectValue(out...), nil
	}
	return v, nil
}
