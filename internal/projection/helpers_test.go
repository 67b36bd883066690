package projection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shexspec/mfgen/internal/rdf"
	"github.com/shexspec/mfgen/internal/turtle"
)

const (
	suiteRoot   = "https://raw.githubusercontent.com/shexSpec/shexTest/master/"
	manifestIRI = suiteRoot + "validation/manifest"
)

const prologue = `@base <` + manifestIRI + `> .
@prefix rdf:  <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix mf:   <http://www.w3.org/2001/sw/DataAccess/tests/test-manifest#> .
@prefix sht:  <http://www.w3.org/ns/shacl/test-suite#> .
@prefix sx:   <https://shexspec.github.io/shexTest/ns#> .
@prefix xsd:  <http://www.w3.org/2001/XMLSchema#> .
`

// loadIndex parses a Turtle body (after the standard prologue) into a frozen
// index.
func loadIndex(t *testing.T, body string) *rdf.Index {
	t.Helper()
	g, err := turtle.ParseString(prologue+body, "")
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	idx := rdf.NewIndex()
	idx.AddAll(g.Triples)
	idx.Freeze()
	return idx
}

// touch creates empty files under dir.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(dir, filepath.FromSlash(n))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatalf("writing %s: %v", p, err)
		}
	}
}

func newProjector(idx *rdf.Index, prober *Prober) *Projector {
	return New(idx, rdf.NewWalker(idx, 0), Options{
		ManifestIRI: manifestIRI,
		Relativizer: NewRelativizer(manifestIRI, suiteRoot),
		Prober:      prober,
	})
}
