package directive

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var errNotMapping = errors.New("expected a mapping")

// LoadFile loads and parses a yaml declaration file from the given path.
func LoadFile(path string) ([]Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	return Parse(data, path)
}

// Parse parses a yaml declaration file. Options are returned as written,
// including repeated or unknown keys, so Validate can report them.
func Parse(data []byte, name string) ([]Raw, error) {
	var doc yaml.Node

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: top level: %w", name, errNotMapping)
	}

	var raws []Raw

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]

		switch key.Value {
		case "version":
			if val.Value != "" && val.Value != "1" {
				return nil, fmt.Errorf("%s:%d: unsupported version %q", name, val.Line, val.Value)
			}
		case "types":
			if val.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("%s:%d: types: expected a list", name, val.Line)
			}

			for _, entry := range val.Content {
				raw, err := parseEntry(entry, name)
				if err != nil {
					return nil, err
				}

				raws = append(raws, raw)
			}
		default:
			return nil, fmt.Errorf("%s:%d: unknown top-level key %q", name, key.Line, key.Value)
		}
	}

	return raws, nil
}

func parseEntry(node *yaml.Node, name string) (Raw, error) {
	if node.Kind != yaml.MappingNode {
		return Raw{}, fmt.Errorf("%s:%d: type entry: %w", name, node.Line, errNotMapping)
	}

	raw := Raw{Pos: fmt.Sprintf("%s:%d", name, node.Line), Source: SourceFile}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		pos := fmt.Sprintf("%s:%d", name, key.Line)

		if key.Value == "type" {
			if raw.TypeName != "" {
				return Raw{}, fmt.Errorf("%s: type given twice", pos)
			}

			raw.TypeName = val.Value

			continue
		}

		values, err := stringOrArray(val)
		if err != nil {
			return Raw{}, fmt.Errorf("%s: %s: %w", pos, key.Value, err)
		}

		raw.Options = append(raw.Options, Option{Key: key.Value, Values: values, Pos: pos})
	}

	if raw.TypeName == "" {
		return Raw{}, fmt.Errorf("%s: type entry without a type name", raw.Pos)
	}

	return raw, nil
}

// stringOrArray accepts a single string or a list of strings.
func stringOrArray(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return []string{}, nil
		}

		return []string{node.Value}, nil
	case yaml.SequenceNode:
		arr := []string{}
		if err := node.Decode(&arr); err != nil {
			return nil, err
		}

		return arr, nil
	default:
		return nil, fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}
