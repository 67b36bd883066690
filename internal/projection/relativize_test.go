package projection

import (
	"os"
	"testing"
)

func TestRelativizer(t *testing.T) {
	r := NewRelativizer(manifestIRI, suiteRoot)
	if r.Dir != suiteRoot+"validation/" {
		t.Fatalf("Dir = %q", r.Dir)
	}

	tests := []struct {
		iri  string
		want string
	}{
		{suiteRoot + "validation/d.ttl", "d.ttl"},
		{suiteRoot + "schemas/s.shex", "../schemas/s.shex"},
		{"http://ex/x", "http://ex/x"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := r.Relativize(tt.iri)
			if got != tt.want {
				t.Fatalf("Relativize(%q) = %q, want %q", tt.iri, got, tt.want)
			}
			if back := r.Resolve(got); back != tt.iri {
				t.Errorf("Resolve(%q) = %q, want %q", got, back, tt.iri)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	for _, k := range Kinds {
		got, ok := KindOf(k.IRI())
		if !ok || got != k {
			t.Errorf("KindOf(%s) = %q, %v", k.IRI(), got, ok)
		}
	}
	if _, ok := KindOf("http://www.w3.org/ns/shacl/test-suite#Bogus"); ok {
		t.Error("KindOf accepted an unknown sht: class")
	}
	if _, ok := KindOf("http://other/ValidationTest"); ok {
		t.Error("KindOf accepted a class outside sht:")
	}
	if !ValidationFailure.RequiresAction() || NegativeSyntax.RequiresAction() {
		t.Error("RequiresAction mismatch")
	}
}

func TestProber_CachesAndSkipsAbsolute(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "present.shex")

	p := NewProber(dir)
	calls := 0
	stat := p.stat
	p.stat = func(path string) (os.FileInfo, error) {
		calls++
		return stat(path)
	}

	if !p.Exists("present.shex") {
		t.Error("present.shex reported missing")
	}
	if p.Exists("absent.shex") || p.Exists("absent.shex") {
		t.Error("absent.shex reported present")
	}
	if !p.Exists("http://ex/remote.shex") {
		t.Error("absolute IRI should not be probed")
	}
	if calls != 2 {
		t.Errorf("stat calls = %d, want 2", calls)
	}
}
