package output

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kazuma-desu/showmore/pkg/models"
	"github.com/kazuma-desu/showmore/pkg/truncate"
)

// SerializeResult encodes a single result as a YAML mapping.
func SerializeResult(r truncate.Result) ([]byte, error) {
	return marshalNode(resultNode("", r))
}

// SerializeEntries encodes truncated entries as a YAML sequence. Multi-line
// text is written as a literal block so line breaks survive unescaped.
func SerializeEntries(entries []*models.TruncatedEntry) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, e := range entries {
		seq.Content = append(seq.Content, resultNode(e.Key, e.Result))
	}
	return marshalNode(seq)
}

func marshalNode(node *yaml.Node) ([]byte, error) {
	return yamlMarshal(node)
}

func resultNode(key string, r truncate.Result) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if key != "" {
		node.Content = append(node.Content, keyNode("key"), stringNode(key))
	}
	node.Content = append(node.Content,
		keyNode("visible"), stringNode(r.Visible),
		keyNode("hidden"), stringNode(r.Hidden),
		keyNode("truncated"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(r.Truncated())},
	)
	return node
}

func keyNode(name string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: name}
}

// stringNode always tags values as !!str so text like "true" or "null"
// round-trips as a string. Text with leading or trailing blanks is
// double-quoted so the seam space stays visible.
func stringNode(val string) *yaml.Node {
	var style yaml.Style
	if strings.Contains(val, "\n") && strings.TrimSpace(val) == val {
		style = yaml.LiteralStyle
	} else if val != strings.TrimSpace(val) || strings.Contains(val, "\n") {
		style = yaml.DoubleQuotedStyle
	}
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: val,
		Style: style,
	}
}

func yamlMarshal(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return data, nil
}
