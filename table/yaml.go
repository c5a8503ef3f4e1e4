package table

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	fixture "github.com/goliatone/go-fixtures"
)

// FromYAML reads a YAML sequence of mappings and returns one record per
// mapping. Nested mappings are flattened into dotted keys and scalars keep
// their literal text, so "1.0" stays "1.0". Null scalars become empty values.
func FromYAML(r io.Reader, opts ...fixture.Option) ([]*fixture.Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("table: decode yaml: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("table: yaml root must be a sequence, got %s", kindName(root.Kind))
	}

	records := make([]*fixture.Record, 0, len(root.Content))
	for i, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("table: row %d must be a mapping, got %s", i+1, kindName(item.Kind))
		}
		values := map[string]string{}
		if err := flatten(item, "", values); err != nil {
			return nil, fmt.Errorf("table: row %d: %w", i+1, err)
		}
		records = append(records, fixture.New(values, opts...))
	}
	return records, nil
}

// FromYAMLFile is FromYAML over the file at path.
func FromYAMLFile(path string, opts ...fixture.Option) ([]*fixture.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: open %s: %w", path, err)
	}
	defer f.Close()
	return FromYAML(f, opts...)
}

func flatten(node *yaml.Node, prefix string, out map[string]string) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value
		if prefix != "" {
			key = prefix + "." + key
		}
		switch valueNode.Kind {
		case yaml.MappingNode:
			if err := flatten(valueNode, key, out); err != nil {
				return err
			}
		case yaml.ScalarNode:
			if _, dup := out[key]; dup {
				return fmt.Errorf("%w: %q", ErrDuplicateColumn, key)
			}
			if valueNode.Tag == "!!null" {
				out[key] = ""
				continue
			}
			out[key] = valueNode.Value
		case yaml.AliasNode:
			if valueNode.Alias == nil || valueNode.Alias.Kind != yaml.ScalarNode {
				return fmt.Errorf("key %q: only scalar aliases are supported", key)
			}
			out[key] = valueNode.Alias.Value
		default:
			return fmt.Errorf("key %q: %s values are not supported", key, kindName(valueNode.Kind))
		}
	}
	return nil
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
