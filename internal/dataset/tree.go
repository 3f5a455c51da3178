package dataset

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roboco-io/eventdesk/internal/table"
)

// decodeTree decodes JSON or YAML. Both go through yaml.Node so mapping
// keys keep their document order.
func decodeTree(data []byte) (*Dataset, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return &Dataset{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return &Dataset{}, nil
	}

	switch root.Kind {
	case yaml.SequenceNode:
		return decodeRows(root, nil)
	case yaml.MappingNode:
		return decodeEnvelope(root)
	default:
		return nil, fmt.Errorf("top-level %s: %w", kindName(root.Kind), ErrInvalidDocument)
	}
}

// decodeEnvelope accepts {columns: [...], rows: [...]} and {data: [...]}.
func decodeEnvelope(node *yaml.Node) (*Dataset, error) {
	rows := lookup(node, "rows")
	if rows == nil {
		rows = lookup(node, "data")
	}
	if rows == nil {
		return nil, fmt.Errorf("mapping without rows or data: %w", ErrInvalidDocument)
	}
	if rows.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("rows must be a list, got %s: %w", kindName(rows.Kind), ErrInvalidDocument)
	}

	var columns []table.Column
	if colNode := lookup(node, "columns"); colNode != nil {
		if err := colNode.Decode(&columns); err != nil {
			return nil, fmt.Errorf("failed to decode columns: %w", err)
		}
		for i := range columns {
			if columns[i].Header == "" {
				columns[i].Header = Header(columns[i].Accessor)
			}
		}
	}
	return decodeRows(rows, columns)
}

func decodeRows(seq *yaml.Node, columns []table.Column) (*Dataset, error) {
	inferred := newColumnSet()
	rows := make([]table.Row, 0, len(seq.Content))

	for i, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("row %d is a %s: %w", i, kindName(item.Kind), ErrInvalidDocument)
		}

		row := make(table.Row, len(item.Content)/2)
		for j := 0; j+1 < len(item.Content); j += 2 {
			key := item.Content[j].Value
			v, err := nodeValue(item.Content[j+1])
			if err != nil {
				return nil, fmt.Errorf("row %d field %q: %w", i, key, err)
			}
			row[key] = v
			inferred.add(key)
		}
		rows = append(rows, row)
	}

	if columns == nil {
		columns = inferred.cols
	}
	return &Dataset{Columns: columns, Rows: rows}, nil
}

func nodeValue(n *yaml.Node) (table.Value, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!timestamp" {
		var t time.Time
		if err := n.Decode(&t); err == nil {
			return table.Date(t), nil
		}
		return table.Text(n.Value), nil
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return table.Null(), err
	}
	return table.FromAny(v), nil
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
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
		return "empty node"
	}
}
