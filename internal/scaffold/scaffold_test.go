package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shexspec/mfgen/internal/projection"
)

const suiteIRI = "https://raw.githubusercontent.com/shexSpec/shexTest/master/"

func makeDir(t *testing.T, name string, files ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("# test\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestGenerate(t *testing.T) {
	dir := makeDir(t, "negativeSyntax", "1unknowndatatypeFAIL.shex", "1dotNoCode1.shex", "README.md")

	result, err := Generate(context.Background(), Options{
		Dir:      dir,
		Kind:     projection.NegativeSyntax,
		SuiteIRI: suiteIRI,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if diff := cmp.Diff([]string{"1dotNoCode1", "1unknowndatatypeFAIL"}, result.Tests); diff != "" {
		t.Errorf("tests mismatch (-want +got):\n%s", diff)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	got, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatal(err)
	}
	want := `@base <` + suiteIRI + `negativeSyntax/manifest> .
@prefix rdf:    <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs:   <http://www.w3.org/2000/01/rdf-schema#> .
@prefix mf:     <http://www.w3.org/2001/sw/DataAccess/tests/test-manifest#> .
@prefix sht:    <http://www.w3.org/ns/shacl/test-suite#> .
@prefix sx:     <https://shexspec.github.io/shexTest/ns#> .

<> a mf:Manifest ;
    rdfs:comment "ShEx negative syntax tests" ;
    mf:entries (
    <#1dotNoCode1>
    <#1unknowndatatypeFAIL>
  ) .

<#1dotNoCode1> a sht:NegativeSyntax ;
  mf:name "1dotNoCode1" ;
  mf:status mf:proposed ;
  sx:shex <1dotNoCode1.shex> ;
  .

<#1unknowndatatypeFAIL> a sht:NegativeSyntax ;
  mf:name "1unknowndatatypeFAIL" ;
  mf:status mf:proposed ;
  sx:shex <1unknowndatatypeFAIL.shex> ;
  .
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Comment(t *testing.T) {
	dir := makeDir(t, "negativeStructure", "a.shex")

	result, err := Generate(context.Background(), Options{
		Dir:      dir,
		Kind:     projection.NegativeStructure,
		Comment:  `structure "edge" cases`,
		SuiteIRI: suiteIRI,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	got, _ := os.ReadFile(result.Path)
	if !strings.Contains(string(got), `rdfs:comment "structure \"edge\" cases" ;`) {
		t.Errorf("comment not escaped:\n%s", got)
	}
	if !strings.Contains(string(got), "a sht:NegativeStructure ;") {
		t.Errorf("kind not rendered:\n%s", got)
	}
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("unsupported kind", func(t *testing.T) {
		dir := makeDir(t, "validation", "a.shex")
		_, err := Generate(context.Background(), Options{Dir: dir, Kind: projection.ValidationTest, SuiteIRI: suiteIRI})
		if !errors.Is(err, ErrUnsupportedKind) {
			t.Errorf("err = %v, want ErrUnsupportedKind", err)
		}
	})

	t.Run("no schemas", func(t *testing.T) {
		dir := makeDir(t, "empty", "README.md")
		_, err := Generate(context.Background(), Options{Dir: dir, Kind: projection.NegativeSyntax, SuiteIRI: suiteIRI})
		if !errors.Is(err, ErrNoSchemas) {
			t.Errorf("err = %v, want ErrNoSchemas", err)
		}
	})

	t.Run("existing manifest", func(t *testing.T) {
		dir := makeDir(t, "negativeSyntax", "a.shex", ManifestName)
		_, err := Generate(context.Background(), Options{Dir: dir, Kind: projection.NegativeSyntax, SuiteIRI: suiteIRI})
		if !errors.Is(err, ErrExists) {
			t.Errorf("err = %v, want ErrExists", err)
		}
	})
}

func TestGenerate_Force(t *testing.T) {
	dir := makeDir(t, "negativeSyntax", "a.shex", ManifestName)

	result, err := Generate(context.Background(), Options{
		Dir:      dir,
		Kind:     projection.NegativeSyntax,
		SuiteIRI: suiteIRI,
		Force:    true,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	got, _ := os.ReadFile(result.Path)
	if !strings.Contains(string(got), "<#a> a sht:NegativeSyntax ;") {
		t.Errorf("manifest not overwritten:\n%s", got)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`a "b"`, `"a \"b\""`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
