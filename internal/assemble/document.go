package assemble

import (
	"bytes"
	"encoding/json"

	"github.com/shexspec/mfgen/internal/projection"
)

// ManifestType is the "@type" of the output document.
const ManifestType = "Manifest"

// DefaultContextRef is the shared JSON-LD context file of a test suite,
// relative to a test directory.
const DefaultContextRef = "../context.jsonld"

// Document is the projected manifest.
type Document struct {
	// Context, when set, is emitted as "@context".
	Context    []any
	ID         string
	Comment    string
	HasComment bool
	Entries    []projection.Record
}

// MarshalJSON writes the fixed top-level shape.
func (d *Document) MarshalJSON() ([]byte, error) {
	var fs projection.Fields
	if len(d.Context) > 0 {
		fs = append(fs, projection.Field{Key: "@context", Value: d.Context})
	}
	fs = append(fs,
		projection.Field{Key: "@id", Value: d.ID},
		projection.Field{Key: "@type", Value: ManifestType},
	)
	if d.HasComment {
		fs = append(fs, projection.Field{Key: "comment", Value: d.Comment})
	}
	entries := d.Entries
	if entries == nil {
		entries = []projection.Record{}
	}
	fs = append(fs, projection.Field{Key: "entries", Value: entries})
	return fs.MarshalJSON()
}

// Encode renders d as indented JSON followed by a newline.
func (d *Document) Encode() ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
