// Package meta provides a hierarchical metadata tree addressed by dotted
// paths such as "General.date".
//
// Nodes map names to scalar values or to child nodes. Every path segment must
// be an identifier (a letter or underscore followed by letters, digits or
// underscores, in the Unicode sense), so that paths read like attribute
// access: "Signal.Noise_properties.variance".
package meta

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/smasher164/xid"
	"golang.org/x/exp/maps"
)

var (
	// ErrPath errors denote invalid paths or paths that traverse a value.
	ErrPath = errors.New("path")

	// ErrNotFound errors are returned when a path does not exist.
	ErrNotFound = errors.New("not found")
)

// Tree is a node of a metadata tree. The zero value is not usable; create
// trees with New. A Tree is not safe for concurrent mutation.
type Tree struct {
	items map[string]any
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{items: map[string]any{}}
}

// FromMap builds a tree from a nested map. Values that are maps become child
// nodes.
func FromMap(src map[string]any) (*Tree, error) {
	tree := New()
	for key, val := range src {
		if err := validSegment(key); err != nil {
			return nil, err
		}
		if m, ok := val.(map[string]any); ok {
			child, err := FromMap(m)
			if err != nil {
				return nil, err
			}
			tree.items[key] = child
			continue
		}
		tree.items[key] = val
	}
	return tree, nil
}

// validSegment returns an error unless seg is an identifier.
func validSegment(seg string) error {
	if seg == "" {
		return fmt.Errorf("%w: empty path segment", ErrPath)
	}
	for i, r := range seg {
		if r == utf8.RuneError {
			return fmt.Errorf("%w: invalid UTF-8 in %q", ErrPath, seg)
		}
		if i == 0 {
			if r != '_' && !xid.Start(r) {
				return fmt.Errorf("%w: %q is not an identifier", ErrPath, seg)
			}
			continue
		}
		if !xid.Continue(r) {
			return fmt.Errorf("%w: %q is not an identifier", ErrPath, seg)
		}
	}
	return nil
}

// split splits path into validated segments.
func split(path string) ([]string, error) {
	segs := strings.Split(path, ".")
	for _, seg := range segs {
		if err := validSegment(seg); err != nil {
			return nil, err
		}
	}
	return segs, nil
}

// lookup returns the node holding the final segment of path, and that
// segment. Returns nil if an intermediate node is missing or is a value.
func (t *Tree) lookup(path string) (*Tree, string) {
	segs, err := split(path)
	if err != nil {
		return nil, ""
	}
	node := t
	for _, seg := range segs[:len(segs)-1] {
		child, ok := node.items[seg].(*Tree)
		if !ok {
			return nil, ""
		}
		node = child
	}
	return node, segs[len(segs)-1]
}

// HasItem returns true if path exists in t, whether as a value or a node.
func (t *Tree) HasItem(path string) bool {
	node, key := t.lookup(path)
	if node == nil {
		return false
	}
	_, ok := node.items[key]
	return ok
}

// GetItem returns the value or *Tree node stored at path and true, or nil
// and false if path does not exist.
func (t *Tree) GetItem(path string) (any, bool) {
	node, key := t.lookup(path)
	if node == nil {
		return nil, false
	}
	val, ok := node.items[key]
	return val, ok
}

// SetItem stores value at path, creating intermediate nodes as needed. A
// map[string]any value is stored as a node. Returns an error wrapping ErrPath
// if path is invalid or passes through a value.
func (t *Tree) SetItem(path string, value any) error {
	segs, err := split(path)
	if err != nil {
		return err
	}

	node := t
	for i, seg := range segs[:len(segs)-1] {
		switch child := node.items[seg].(type) {
		case *Tree:
			node = child
		case nil:
			next := New()
			node.items[seg] = next
			node = next
		default:
			return fmt.Errorf(
				"%w: %q is a value, not a node",
				ErrPath, strings.Join(segs[:i+1], "."),
			)
		}
	}

	if m, ok := value.(map[string]any); ok {
		child, err := FromMap(m)
		if err != nil {
			return err
		}
		value = child
	}
	node.items[segs[len(segs)-1]] = value
	return nil
}

// DeleteItem removes path from t. Emptied parent nodes are kept. Returns an
// error wrapping ErrNotFound if path does not exist.
func (t *Tree) DeleteItem(path string) error {
	node, key := t.lookup(path)
	if node == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	if _, ok := node.items[key]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	delete(node.items, key)
	return nil
}

// Keys returns the names of the direct children of t in sorted order.
func (t *Tree) Keys() []string {
	keys := maps.Keys(t.items)
	slices.Sort(keys)
	return keys
}

// Len returns the number of direct children of t.
func (t *Tree) Len() int {
	return len(t.items)
}

// ToMap returns t as a nested map. Child nodes become nested maps.
func (t *Tree) ToMap() map[string]any {
	out := make(map[string]any, len(t.items))
	for key, val := range t.items {
		if child, ok := val.(*Tree); ok {
			out[key] = child.ToMap()
			continue
		}
		out[key] = val
	}
	return out
}

// String renders t as an indented tree in sorted key order:
//
//	├── General
//	│   ├── date = 1991-10-01
//	│   └── time = 12:00:00
//	└── Signal
//	    └── signal_type = EELS
func (t *Tree) String() string {
	var b strings.Builder
	t.render(&b, "")
	return b.String()
}

func (t *Tree) render(b *strings.Builder, prefix string) {
	keys := t.Keys()
	for i, key := range keys {
		branch, indent := "├── ", "│   "
		if i == len(keys)-1 {
			branch, indent = "└── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(key)
		if child, ok := t.items[key].(*Tree); ok {
			b.WriteByte('\n')
			child.render(b, prefix+indent)
			continue
		}
		fmt.Fprintf(b, " = %v\n", t.items[key])
	}
}
