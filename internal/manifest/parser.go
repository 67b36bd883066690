package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// UnmarshalYAML accepts either a scalar IRI or a value object.
func (f *Focus) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		f.IRI = n.Value
		return nil
	}
	type plain Focus
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*f = Focus(p)
	return nil
}

// Parse decodes an emitted manifest from data. JSON input is accepted
// because every JSON document is also YAML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if doc.Type != ManifestType {
		return nil, fmt.Errorf("document @type is %q, want %q", doc.Type, ManifestType)
	}
	return &doc, nil
}

// ParseFile reads and decodes the manifest at path.
func ParseFile(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Files returns every file reference of the document, in entry order. The
// shape and focus of an action are node references, not files.
func (d *Document) Files() []string {
	var out []string
	add := func(s string) {
		if s != "" {
			out = append(out, s)
		}
	}
	for _, e := range d.Entries {
		if a := e.Action; a != nil {
			add(a.Schema)
			add(a.Data)
			add(a.Map)
			add(a.SemActs)
			add(a.ShapeExterns)
		}
		add(e.Result)
		add(e.Shex)
		add(e.JSON)
		add(e.TTL)
	}
	return out
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
