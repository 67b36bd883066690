package assemble

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/shexspec/mfgen/internal/platform"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or yaml)", s)
	}
}

// Render encodes d in format f.
func Render(d *Document, f Format) ([]byte, error) {
	data, err := d.Encode()
	if err != nil {
		return nil, err
	}
	if f != FormatYAML {
		return data, nil
	}
	return jsonToYAML(data)
}

// Emit writes d to w.
func Emit(w io.Writer, d *Document, f Format) error {
	data, err := Render(d, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes d to path, replacing any existing file atomically.
func WriteFile(path string, d *Document, f Format) error {
	data, err := Render(d, f)
	if err != nil {
		return err
	}
	return platform.WriteFileAtomic(path, data, 0o644)
}

// jsonToYAML re-encodes a JSON document as block-style YAML. Going through
// yaml.Node keeps the key order of the JSON object.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("converting to yaml: %w", err)
	}
	blockStyle(&node)
	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("converting to yaml: %w", err)
	}
	return out, nil
}

func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style = 0
	}
	if n.Kind == yaml.ScalarNode && n.Style == yaml.DoubleQuotedStyle && n.Tag == "!!str" {
		n.Style = 0
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}
