package templates

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kernelmeta/gencontrol/internal/control"
	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

// ParseEntries decodes a control template: a YAML sequence of mappings.
// Field order is preserved. Scalar values are typed by field name
// (control.ParseField); sequence values become lists.
func ParseEntries(data []byte) ([]*control.Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, gerrors.NewValidationError(err.Error(), "", "", "")
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, gerrors.NewValidationError("expected a single YAML document", "", "", "")
	}

	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, gerrors.NewValidationError(
			fmt.Sprintf("line %d: expected a list of entries", root.Line), "", "",
			"start each entry with '- Package:'")
	}

	entries := make([]*control.Entry, 0, len(root.Content))
	for _, node := range root.Content {
		e, err := parseEntry(node)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseEntry(node *yaml.Node) (*control.Entry, error) {
	if node.Kind != yaml.MappingNode {
		return nil, gerrors.NewValidationError(fmt.Sprintf("line %d: entry is not a mapping", node.Line), "", "", "")
	}

	e := &control.Entry{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		name := key.Value
		if e.Has(name) {
			return nil, gerrors.NewValidationError(fmt.Sprintf("line %d: duplicate field", key.Line), "", name, "")
		}

		switch val.Kind {
		case yaml.ScalarNode:
			e.Set(name, control.ParseField(name, val.Value))
		case yaml.SequenceNode:
			items := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, gerrors.NewValidationError(
						fmt.Sprintf("line %d: list items must be scalars", item.Line), "", name, "")
				}
				items = append(items, item.Value)
			}
			if name == control.FieldDescription {
				return nil, gerrors.NewValidationError(
					fmt.Sprintf("line %d: description must be a string", val.Line), "", name, "")
			}
			e.Set(name, control.List(items...))
		default:
			return nil, gerrors.NewValidationError(
				fmt.Sprintf("line %d: unsupported value", val.Line), "", name, "use a string or a list of strings")
		}
	}
	return e, nil
}
