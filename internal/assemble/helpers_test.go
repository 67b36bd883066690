package assemble

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shexspec/mfgen/internal/diag"
)

const (
	suiteRoot   = "https://raw.githubusercontent.com/shexSpec/shexTest/master/"
	manifestIRI = suiteRoot + "validation/manifest"
)

const prologue = `@prefix rdf:  <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix mf:   <http://www.w3.org/2001/sw/DataAccess/tests/test-manifest#> .
@prefix sht:  <http://www.w3.org/ns/shacl/test-suite#> .
@prefix sx:   <https://shexspec.github.io/shexTest/ns#> .
`

func run(t *testing.T, mode diag.Mode, dir, body string) (*Result, error) {
	t.Helper()
	a := New(Options{Mode: mode, BaseDir: dir, SuiteIRI: suiteRoot, Workers: 3})
	return a.Run(context.Background(), strings.NewReader(prologue+body), manifestIRI)
}

func mustRun(t *testing.T, mode diag.Mode, dir, body string) *Result {
	t.Helper()
	res, err := run(t, mode, dir, body)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}
