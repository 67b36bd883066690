//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"
)

const suiteIRI = "https://raw.githubusercontent.com/shexSpec/shexTest/master/"

// setupSuite creates a synthetic test suite: shared schemas, a validation
// directory whose manifest references them, and a negative syntax directory
// without a manifest.
func setupSuite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "schemas", "1dot.shex"), "<http://a.example/S1> { <http://a.example/p1> . }\n")
	writeFile(t, filepath.Join(root, "schemas", "1literal.shex"), "<http://a.example/S1> { <http://a.example/p1> LITERAL }\n")

	writeFile(t, filepath.Join(root, "validation", "Is1_Ip1_Io1.ttl"), "<http://a.example/s1> <http://a.example/p1> <http://a.example/o1> .\n")
	writeFile(t, filepath.Join(root, "validation", "manifest.ttl"), `@prefix rdf:  <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix mf:   <http://www.w3.org/2001/sw/DataAccess/tests/test-manifest#> .
@prefix sht:  <http://www.w3.org/ns/shacl/test-suite#> .
@prefix sx:   <https://shexspec.github.io/shexTest/ns#> .

<> a mf:Manifest ;
  rdfs:comment "ShEx validation tests" ;
  mf:entries (
    <#1dot_pass>
    <#1literal_fail>
  ) .

<#1dot_pass> a sht:ValidationTest ;
  mf:name "1dot_pass" ;
  sht:trait sht:TriplePattern ;
  rdfs:comment "<S> { <p1> . } on { <s1> <p1> <o1> }" ;
  mf:status mf:approved ;
  mf:action [
    sht:schema <../schemas/1dot.shex> ;
    sht:shape <http://a.example/S1> ;
    sht:data <Is1_Ip1_Io1.ttl> ;
    sht:focus <http://a.example/s1>
  ] .

<#1literal_fail> a sht:ValidationFailure ;
  mf:name "1literal_fail" ;
  mf:status mf:approved ;
  mf:action [
    sht:schema <../schemas/1literal.shex> ;
    sht:shape <http://a.example/S1> ;
    sht:data <Is1_Ip1_Io1.ttl> ;
    sht:focus <http://a.example/s1>
  ] .
`)

	writeFile(t, filepath.Join(root, "negativeSyntax", "1dotNoCode1.shex"), "<S> { <p1> . %<code> }\n")
	writeFile(t, filepath.Join(root, "negativeSyntax", "1unknowndatatypeFAIL.shex"), "<S> { <p1> <dt1> }\n")

	return root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
