package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// NamedLists is an ordered mapping of unique names to lists. A name keeps the
// position of its first definition; redefining it replaces the whole list.
//
// The zero value is empty and ready to use. All read methods are nil-safe.
type NamedLists[T any] struct {
	names []string
	lists map[string][]T
}

// NewNamedLists returns an empty NamedLists.
func NewNamedLists[T any]() *NamedLists[T] {
	return &NamedLists[T]{lists: make(map[string][]T)}
}

// Set defines name, replacing any previous list under that name.
func (n *NamedLists[T]) Set(name string, list []T) {
	if n.lists == nil {
		n.lists = make(map[string][]T)
	}
	if _, exists := n.lists[name]; !exists {
		n.names = append(n.names, name)
	}
	if list == nil {
		list = []T{}
	}
	n.lists[name] = list
}

// Get returns the list defined under name.
func (n *NamedLists[T]) Get(name string) ([]T, bool) {
	if n == nil {
		return nil, false
	}
	list, ok := n.lists[name]
	return list, ok
}

// Has reports whether name is defined.
func (n *NamedLists[T]) Has(name string) bool {
	_, ok := n.Get(name)
	return ok
}

// Names returns the defined names in definition order.
func (n *NamedLists[T]) Names() []string {
	if n == nil {
		return nil
	}
	return slices.Clone(n.names)
}

// Len returns the number of defined names.
func (n *NamedLists[T]) Len() int {
	if n == nil {
		return 0
	}
	return len(n.names)
}

// UnmarshalYAML decodes a mapping node while preserving key order.
func (n *NamedLists[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of named lists", node.Line)
	}

	out := NewNamedLists[T]()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if out.Has(key.Value) {
			return fmt.Errorf("line %d: list %q defined more than once", key.Line, key.Value)
		}
		var list []T
		if err := val.Decode(&list); err != nil {
			return fmt.Errorf("line %d: list %q: %w", val.Line, key.Value, err)
		}
		out.Set(key.Value, list)
	}

	*n = *out
	return nil
}

// MarshalYAML encodes the lists as a mapping in definition order.
func (n NamedLists[T]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range n.names {
		var val yaml.Node
		if err := val.Encode(n.lists[name]); err != nil {
			return nil, fmt.Errorf("list %q: %w", name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&val,
		)
	}
	return node, nil
}

// MarshalJSON encodes the lists as an object in definition order.
func (n NamedLists[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range n.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(n.lists[name])
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// mergeNamedLists folds src into dst by name, later definitions replacing
// earlier ones in full. dst is allocated on first use and never aliases src;
// cloneItem, when set, copies each element.
func mergeNamedLists[T any](dst, src *NamedLists[T], cloneItem func(T) T) *NamedLists[T] {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = NewNamedLists[T]()
	}
	for _, name := range src.names {
		list := slices.Clone(src.lists[name])
		if cloneItem != nil {
			for i := range list {
				list[i] = cloneItem(list[i])
			}
		}
		dst.Set(name, list)
	}
	return dst
}
