package content

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is a raw content mapping keyed by field name. Values stay as YAML
// nodes until a parser asks for a specific shape, which is what lets the
// parsers tell "missing" apart from "present with the wrong type".
type Record map[string]*yaml.Node

// Entry is one named child record, in file order.
type Entry struct {
	Name   string
	Record Record
}

// DecodeRecord parses one YAML document whose root is a mapping.
func DecodeRecord(data []byte) (Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind == 0 {
		return Record{}, nil
	}
	root := resolve(&doc)
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return Record{}, nil
		}
		root = resolve(root.Content[0])
	}
	return RecordFromNode(root)
}

// RecordFromNode converts a mapping node into a Record. A null node yields an
// empty record so "Item Name:" with no body parses as all defaults.
func RecordFromNode(node *yaml.Node) (Record, error) {
	node = resolve(node)
	if isNull(node) {
		return Record{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node))
	}
	rec := make(Record, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolve(node.Content[i])
		rec[key.Value] = node.Content[i+1]
	}
	return rec, nil
}

// Has reports whether field is present, even if null.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Entries returns the named children of a mapping field in file order.
// A missing or null field yields no entries.
func (r Record) Entries(field string) ([]Entry, error) {
	node, ok := r.lookup(field)
	if !ok {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, invalidField(field, "expected a mapping of named entries, got %s", kindName(node))
	}
	entries := make([]Entry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := resolve(node.Content[i]).Value
		child, err := RecordFromNode(node.Content[i+1])
		if err != nil {
			return nil, &ValidationError{Item: name, Reason: err.Error()}
		}
		entries = append(entries, Entry{Name: name, Record: child})
	}
	return entries, nil
}

// Text returns a scalar field as text.
func (r Record) Text(field string) (string, bool, error) {
	node, ok := r.lookup(field)
	if !ok {
		return "", false, nil
	}
	if node.Kind != yaml.ScalarNode {
		return "", false, invalidField(field, "expected a scalar, got %s", kindName(node))
	}
	return node.Value, true, nil
}

// Int returns an integer field.
func (r Record) Int(field string) (int, bool, error) {
	node, ok := r.lookup(field)
	if !ok {
		return 0, false, nil
	}
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" {
		return 0, false, invalidField(field, "expected an integer, got %q", node.Value)
	}
	var value int
	if err := node.Decode(&value); err != nil {
		return 0, false, invalidField(field, "expected an integer: %v", err)
	}
	return value, true, nil
}

// yaml11Bools holds the plain words YAML 1.1 reads as booleans beyond
// true and false.
var yaml11Bools = map[string]bool{
	"y": true, "Y": true, "yes": true, "Yes": true, "YES": true,
	"n": false, "N": false, "no": false, "No": false, "NO": false,
	"on": true, "On": true, "ON": true,
	"off": false, "Off": false, "OFF": false,
}

// Bool returns a boolean field. Unlike the other accessors a present null is
// not treated as absent: the value must be a YAML boolean. Unquoted YAML 1.1
// words such as yes and off are accepted; quoted strings are not.
func (r Record) Bool(field string) (bool, bool, error) {
	node, ok := r[field]
	if !ok {
		return false, false, nil
	}
	node = resolve(node)
	if node.Kind == yaml.ScalarNode && node.Style == 0 {
		if value, ok := yaml11Bools[node.Value]; ok {
			return value, true, nil
		}
	}
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!bool" {
		return false, false, invalidField(field, "expected a boolean, got %q", node.Value)
	}
	var value bool
	if err := node.Decode(&value); err != nil {
		return false, false, invalidField(field, "expected a boolean: %v", err)
	}
	return value, true, nil
}

// Strings returns a sequence of scalars. A single scalar is read as a
// one-element list.
func (r Record) Strings(field string) ([]string, bool, error) {
	node, ok := r.lookup(field)
	if !ok {
		return nil, false, nil
	}
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, true, nil
	case yaml.SequenceNode:
		values := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			child = resolve(child)
			if child.Kind != yaml.ScalarNode {
				return nil, false, invalidField(field, "expected a list of scalars, found %s", kindName(child))
			}
			values = append(values, child.Value)
		}
		return values, true, nil
	default:
		return nil, false, invalidField(field, "expected a list, got %s", kindName(node))
	}
}

// lookup returns the resolved node for field, treating null as absent.
func (r Record) lookup(field string) (*yaml.Node, bool) {
	node, ok := r[field]
	if !ok || node == nil {
		return nil, false
	}
	node = resolve(node)
	if isNull(node) {
		return nil, false
	}
	return node, true
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar " + strings.TrimPrefix(node.ShortTag(), "!!")
	default:
		return "node"
	}
}

// DefaultWiki derives a wiki slug from an item name: spaces become
// underscores and question marks are percent-encoded. Nothing else changes.
func DefaultWiki(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, " ", "_"), "?", "%3F")
}

// Reserved separators used by status keys.
const (
	keySeparator    = "::"
	prefixSeparator = "!"
)

// checkName rejects names that would make status keys ambiguous.
func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is empty")
	}
	if strings.Contains(name, keySeparator) {
		return fmt.Errorf("name contains reserved separator %q", keySeparator)
	}
	if strings.Contains(name, prefixSeparator) {
		return fmt.Errorf("name contains reserved separator %q", prefixSeparator)
	}
	return nil
}

// wikiOrDefault reads the Wiki field, falling back to DefaultWiki.
func wikiOrDefault(rec Record, name string) (string, error) {
	wiki, ok, err := rec.Text("Wiki")
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(wiki) == "" {
		return DefaultWiki(name), nil
	}
	return wiki, nil
}

// intField reads an optional integer field into dst, leaving dst untouched when absent.
func intField(rec Record, field string, dst *int) error {
	value, ok, err := rec.Int(field)
	if err != nil {
		return err
	}
	if ok {
		*dst = value
	}
	return nil
}

// stringField reads an optional scalar field into dst, leaving dst untouched when absent.
func stringField(rec Record, field string, dst *string) error {
	value, ok, err := rec.Text(field)
	if err != nil {
		return err
	}
	if ok {
		*dst = value
	}
	return nil
}

// professionField reads an optional Profession field.
func professionField(rec Record, field string) (Profession, error) {
	raw, ok, err := rec.Text(field)
	if err != nil || !ok {
		return ProfessionNone, err
	}
	p, err := ParseProfession(raw)
	if err != nil {
		return ProfessionNone, invalidField(field, "%v", err)
	}
	return p, nil
}
