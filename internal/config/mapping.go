package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/hydrex/internal/domain/mapping"
)

// IndexClassMapping is the ordered `index: domain key` table of the config file.
type IndexClassMapping []mapping.Entry

// UnmarshalYAML keeps the document order of the mapping node.
func (m *IndexClassMapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: index_class_mapping must be a mapping", node.Line)
	}

	seen := make(map[string]bool, len(node.Content)/2)
	out := make(IndexClassMapping, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: index_class_mapping entries must be scalars", k.Line)
		}
		if k.Value == "" || v.Value == "" {
			return fmt.Errorf("line %d: index and domain key must not be empty", k.Line)
		}
		if seen[k.Value] {
			return fmt.Errorf("line %d: index %q mapped twice", k.Line, k.Value)
		}
		seen[k.Value] = true
		out = append(out, mapping.Entry{Index: k.Value, DomainKey: v.Value})
	}

	*m = out
	return nil
}

// DomainKeys returns the distinct domain keys in first-seen order.
func (m IndexClassMapping) DomainKeys() []string {
	seen := make(map[string]bool, len(m))
	var keys []string
	for _, e := range m {
		k := mapping.Canonical(e.DomainKey)
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, e.DomainKey)
	}
	return keys
}
