// Package metadata writes the structured per-header catalog (X.gen) read by
// runtimes that do not parse the generated glue.
package metadata

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MapWriter is a nested map writer. Lists have no primitive of their own;
// callers write a count key followed by that many entries.
type MapWriter interface {
	BeginMap(name string)
	Key(key string)
	Value(value interface{})
	EndMap()
	Bytes() ([]byte, error)
}

// DefaultIndent is the YAML indentation used when none is configured
const DefaultIndent = 2

// YAMLWriter builds an ordered YAML document. Misuse (a value without a key,
// unbalanced maps) is recorded and reported by Bytes.
type YAMLWriter struct {
	indent     int
	root       *yaml.Node
	stack      []*yaml.Node
	pendingKey *string
	err        error
}

// NewYAMLWriter creates a writer with an empty top-level map
func NewYAMLWriter(indent int) *YAMLWriter {
	if indent <= 0 {
		indent = DefaultIndent
	}
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	return &YAMLWriter{
		indent: indent,
		root:   root,
		stack:  []*yaml.Node{root},
	}
}

// BeginMap opens a nested map stored under name in the current map
func (w *YAMLWriter) BeginMap(name string) {
	if w.err != nil {
		return
	}
	if w.pendingKey != nil {
		w.fail("map %q opened while key %q has no value", name, *w.pendingKey)
		return
	}

	child := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	w.append(name, child)
	w.stack = append(w.stack, child)
}

// Key sets the key of the next value
func (w *YAMLWriter) Key(key string) {
	if w.err != nil {
		return
	}
	if w.pendingKey != nil {
		w.fail("key %q written while key %q has no value", key, *w.pendingKey)
		return
	}
	w.pendingKey = &key
}

// Value writes a scalar under the pending key
func (w *YAMLWriter) Value(value interface{}) {
	if w.err != nil {
		return
	}
	if w.pendingKey == nil {
		w.fail("value %v written without a key", value)
		return
	}

	key := *w.pendingKey
	w.pendingKey = nil
	w.append(key, scalarNode(value))
}

// EndMap closes the innermost open map
func (w *YAMLWriter) EndMap() {
	if w.err != nil {
		return
	}
	if len(w.stack) <= 1 {
		w.fail("EndMap without a matching BeginMap")
		return
	}
	if w.pendingKey != nil {
		w.fail("map closed while key %q has no value", *w.pendingKey)
		return
	}
	w.stack = w.stack[:len(w.stack)-1]
}

// Bytes encodes the document. Every opened map must have been closed.
func (w *YAMLWriter) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if len(w.stack) != 1 {
		return nil, fmt.Errorf("metadata document has %d unclosed map(s)", len(w.stack)-1)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(w.indent)
	if err := encoder.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{w.root}}); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *YAMLWriter) append(key string, value *yaml.Node) {
	current := w.stack[len(w.stack)-1]
	current.Content = append(current.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func (w *YAMLWriter) fail(format string, args ...interface{}) {
	w.err = fmt.Errorf(format, args...)
}

func scalarNode(value interface{}) *yaml.Node {
	switch v := value.(type) {
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprint(v)}
	}
}
