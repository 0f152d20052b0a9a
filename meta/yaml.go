package meta

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// MarshalYAML implements yaml.Marshaler. Nodes become mappings.
func (t *Tree) MarshalYAML() (any, error) {
	return t.ToMap(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The node must be a mapping
// whose keys are identifiers. Timestamps such as an unquoted 1991-10-01 keep
// their text.
func (t *Tree) UnmarshalYAML(value *yaml.Node) error {
	keepTimestamps(value)
	var m map[string]any
	if err := value.Decode(&m); err != nil {
		return fmt.Errorf("%w: %w", ErrPath, err)
	}
	tree, err := FromMap(m)
	if err != nil {
		return err
	}
	*t = *tree
	return nil
}

// keepTimestamps retags the timestamp scalars under n as strings.
func keepTimestamps(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!timestamp" {
		n.Tag = "!!str"
	}
	for _, child := range n.Content {
		keepTimestamps(child)
	}
}

// Load decodes a YAML document from r into a new tree. An empty document
// yields an empty tree.
func Load(r io.Reader) (*Tree, error) {
	tree := New()
	if err := yaml.NewDecoder(r).Decode(tree); err != nil {
		if errors.Is(err, io.EOF) {
			return tree, nil
		}
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if tree.items == nil {
		// A null document decodes to the zero Tree.
		return New(), nil
	}
	return tree, nil
}

// Save encodes t as a YAML document to w.
func (t *Tree) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}
