package main

import (
	"encoding/base64"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// yamlPrinter prints each value as a separate YAML document.
type yamlPrinter struct {
	enc *yaml.Encoder
}

func newYAMLPrinter(w io.Writer) *yamlPrinter {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &yamlPrinter{enc: enc}
}

func (p *yamlPrinter) Print(n node) error {
	return p.enc.Encode(yamlNode(n))
}

func (p *yamlPrinter) Close() error {
	return p.enc.Close()
}

func yamlNode(n node) *yaml.Node {
	if n.aggregate {
		y := &yaml.Node{Kind: yaml.SequenceNode, Tag: n.tag}
		if n.keyed {
			y.Kind = yaml.MappingNode
		}
		y.Content = make([]*yaml.Node, len(n.children))
		for i, c := range n.children {
			y.Content[i] = yamlNode(c)
		}
		return y
	}

	y := &yaml.Node{Kind: yaml.ScalarNode, Tag: n.tag, Value: n.value}
	if n.yamlValue != "" {
		y.Value = n.yamlValue
	}

	if n.hasPayload {
		y.Value = string(n.payload)
		if n.value != "" {
			y.LineComment = n.value
		}
		if !utf8.Valid(n.payload) {
			y.Tag = "!!binary"
			y.Value = base64.StdEncoding.EncodeToString(n.payload)
			y.LineComment = n.kind
		}
	}
	if y.Value == "" {
		y.Style = yaml.DoubleQuotedStyle
	}

	return y
}
