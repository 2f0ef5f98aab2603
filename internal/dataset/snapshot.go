package dataset

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reserved snapshot keys. Any field sharing the prefix is kept out of Fields.
const (
	reservedPrefix           = "binary_interest"
	keyBinaryInterest        = "binary_interest"
	keyBinaryInterestChanged = "binary_interest_changed"
)

// Pair is one key/value entry of an ordered mapping.
type Pair struct {
	Key   string
	Value string
}

// Pairs is a mapping that keeps the order in which keys appear in the source document.
type Pairs []Pair

// Field is a free-form snapshot field with its value already rendered as text.
type Field struct {
	Name  string
	Value string
}

// SnapshotRelease describes the packages shipped with one release.
type SnapshotRelease struct {
	// Fields holds every field not starting with "binary_interest", in document order.
	Fields []Field
	// BinaryInterest maps binary name to version, in document order.
	BinaryInterest Pairs
	// BinaryInterestChanged names the binaries whose version changed.
	BinaryInterestChanged []string
}

// Changed returns BinaryInterestChanged as a set.
func (s *SnapshotRelease) Changed() map[string]bool {
	set := make(map[string]bool, len(s.BinaryInterestChanged))
	for _, name := range s.BinaryInterestChanged {
		set[name] = true
	}
	return set
}

// UnmarshalYAML decodes a snapshot mapping, splitting the reserved keys from free-form fields.
func (s *SnapshotRelease) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: snapshot must be a mapping", node.Line)
	}

	var decoded SnapshotRelease
	for _, entry := range mappingEntries(node) {
		key, valueNode := entry.key.Value, entry.value

		switch {
		case key == keyBinaryInterest:
			if err := valueNode.Decode(&decoded.BinaryInterest); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		case key == keyBinaryInterestChanged:
			names, err := decodeScalarList(valueNode)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			decoded.BinaryInterestChanged = names
		case strings.HasPrefix(key, reservedPrefix):
			continue
		default:
			value, err := renderValue(valueNode)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			decoded.Fields = append(decoded.Fields, Field{Name: key, Value: value})
		}
	}

	*s = decoded
	return nil
}

// UnmarshalYAML decodes a mapping of scalars, preserving key order.
func (p *Pairs) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if isNull(node) {
		*p = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}

	entries := mappingEntries(node)
	pairs := make(Pairs, 0, len(entries))
	for _, entry := range entries {
		if entry.value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value for %q must be a scalar", entry.value.Line, entry.key.Value)
		}
		pairs = append(pairs, Pair{Key: entry.key.Value, Value: scalarText(entry.value)})
	}

	*p = pairs
	return nil
}

// keys returns the keys in order.
func (p Pairs) keys() []string {
	keys := make([]string, len(p))
	for i, pair := range p {
		keys[i] = pair.Key
	}
	return keys
}

// decodeScalarList decodes a sequence of scalars. A null node yields nil.
func decodeScalarList(node *yaml.Node) ([]string, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a sequence", node.Line)
	}
	names := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: expected a scalar", item.Line)
		}
		names = append(names, scalarText(item))
	}
	return names, nil
}

// renderValue renders a field value as text. Scalars keep their source text
// and null renders empty; collections are re-encoded in YAML flow style.
func renderValue(node *yaml.Node) (string, error) {
	if node.Kind == yaml.ScalarNode {
		return scalarText(node), nil
	}

	flow := *node
	flow.Style = yaml.FlowStyle
	out, err := yaml.Marshal(&flow)
	if err != nil {
		return "", fmt.Errorf("encoding value: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

type entry struct {
	key, value *yaml.Node
}

// mappingEntries lists the key/value pairs of a mapping in document order,
// expanding merge keys. Explicit keys win over merged ones, and earlier
// merge sources win over later ones.
func mappingEntries(node *yaml.Node) []entry {
	explicit := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if !isMergeKey(node.Content[i]) {
			explicit[node.Content[i].Value] = true
		}
	}

	seen := make(map[string]bool, len(explicit))
	var entries []entry
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], resolveAlias(node.Content[i+1])
		if !isMergeKey(key) {
			seen[key.Value] = true
			entries = append(entries, entry{key: key, value: value})
			continue
		}
		for _, source := range mergeSources(value) {
			for _, merged := range mappingEntries(source) {
				name := merged.key.Value
				if explicit[name] || seen[name] {
					continue
				}
				seen[name] = true
				entries = append(entries, merged)
			}
		}
	}
	return entries
}

func mergeSources(node *yaml.Node) []*yaml.Node {
	switch node.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{node}
	case yaml.SequenceNode:
		var sources []*yaml.Node
		for _, item := range node.Content {
			if item = resolveAlias(item); item.Kind == yaml.MappingNode {
				sources = append(sources, item)
			}
		}
		return sources
	}
	return nil
}

func isMergeKey(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Value == "<<" && node.ShortTag() == "!!merge"
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

func scalarText(node *yaml.Node) string {
	if isNull(node) {
		return ""
	}
	return node.Value
}
