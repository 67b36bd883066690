package projection

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shexspec/mfgen/internal/rdf"
)

func marshal(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	return string(b)
}

func TestProject_ValidationTest(t *testing.T) {
	idx := loadIndex(t, `
<#A> a sht:ValidationTest ;
  mf:name "A" ;
  mf:action [ sht:schema <s.shex> ; sht:data <d.ttl> ; sht:focus <http://ex/x> ] .
`)
	dir := t.TempDir()
	touch(t, dir, "s.shex", "d.ttl")

	got, err := newProjector(idx, NewProber(dir)).Project(rdf.IRI(manifestIRI+"#A"), ValidationTest)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	want := `{"@id":"#A","@type":"ValidationTest","name":"A","action":{"schema":"s.shex","data":"d.ttl","focus":"http://ex/x"}}`
	if s := marshal(t, got.Record); s != want {
		t.Errorf("record =\n%s\nwant\n%s", s, want)
	}
	if len(got.Missing) != 0 {
		t.Errorf("Missing = %v, want none", got.Missing)
	}
	if !got.HasName || got.Name != "A" {
		t.Errorf("Name = %q/%v, want A/true", got.Name, got.HasName)
	}
}

func TestProject_FullActionTable(t *testing.T) {
	idx := loadIndex(t, `
<#full> a sht:ValidationFailure ;
  mf:name "full" ;
  sht:trait sht:Import, sht:Extends ;
  rdfs:comment "all the fields" ;
  mf:status mf:proposed ;
  mf:action [
    sht:schema <../schemas/full.shex> ;
    sht:shape <http://a.example/S> ;
    sht:data <full.ttl> ;
    sht:focus "1"^^xsd:integer ;
    sht:semActs <../schemas/full.semacts>
  ] ;
  mf:result <full.val> ;
  mf:extensionResults ( [ mf:extension <http://ex/Test> ; mf:prints "hi" ] ) .
`)
	got, err := newProjector(idx, nil).Project(rdf.IRI(manifestIRI+"#full"), ValidationFailure)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	wantKeys := []string{"name", "trait", "comment", "status", "action", "result", "extensionResults"}
	if diff := cmp.Diff(wantKeys, got.Record.Fields.Keys()); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}

	action, _ := got.Record.Fields.Get("action")
	wantAction := `{"schema":"../schemas/full.shex","shape":"http://a.example/S","data":"full.ttl","focus":{"@value":"1","@type":"http://www.w3.org/2001/XMLSchema#integer"},"semActs":"../schemas/full.semacts"}`
	if s := marshal(t, action); s != wantAction {
		t.Errorf("action =\n%s\nwant\n%s", s, wantAction)
	}

	checks := map[string]string{
		"trait":            `["Import","Extends"]`,
		"status":           `"mf:proposed"`,
		"result":           `"full.val"`,
		"extensionResults": `[{"extension":"http://ex/Test","prints":"hi"}]`,
	}
	for key, want := range checks {
		v, ok := got.Record.Fields.Get(key)
		if !ok {
			t.Errorf("field %s missing", key)
			continue
		}
		if s := marshal(t, v); s != want {
			t.Errorf("%s = %s, want %s", key, s, want)
		}
	}
}

func TestProject_LangFocus(t *testing.T) {
	idx := loadIndex(t, `
<#lang> a sht:ValidationTest ;
  mf:action [ sht:focus "chat"@fr ] .
`)
	got, err := newProjector(idx, nil).Project(rdf.IRI(manifestIRI+"#lang"), ValidationTest)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	want := `{"@id":"#lang","@type":"ValidationTest","action":{"focus":{"@value":"chat","@language":"fr"}}}`
	if s := marshal(t, got.Record); s != want {
		t.Errorf("record = %s, want %s", s, want)
	}
}

func TestProject_DirectKind(t *testing.T) {
	idx := loadIndex(t, `
<#1bad> a sht:NegativeSyntax ;
  mf:name "1bad" ;
  mf:status mf:proposed ;
  sx:shex <1bad.shex> ;
  rdfs:comment "ignored for direct kinds" .
`)
	dir := t.TempDir()
	got, err := newProjector(idx, NewProber(dir)).Project(rdf.IRI(manifestIRI+"#1bad"), NegativeSyntax)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	want := `{"@id":"#1bad","@type":"NegativeSyntax","name":"1bad","status":"mf:proposed","shex":"1bad.shex"}`
	if s := marshal(t, got.Record); s != want {
		t.Errorf("record = %s, want %s", s, want)
	}
	if diff := cmp.Diff([]string{"1bad.shex"}, got.Missing); diff != "" {
		t.Errorf("Missing mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_AmbiguousAction(t *testing.T) {
	idx := loadIndex(t, `
<#none> a sht:ValidationTest ; mf:name "none" .
<#two> a sht:ValidationTest ;
  mf:action [ sht:data <a.ttl> ], [ sht:data <b.ttl> ] .
`)
	p := newProjector(idx, nil)
	for _, id := range []string{"#none", "#two"} {
		_, err := p.Project(rdf.IRI(manifestIRI+id), ValidationTest)
		if !errors.Is(err, ErrAmbiguousAction) {
			t.Errorf("Project(%s) error = %v, want ErrAmbiguousAction", id, err)
		}
	}
}

func TestProject_MalformedTraitList(t *testing.T) {
	idx := loadIndex(t, `
<#t> a sht:NegativeStructure ; sht:trait _:l .
_:l rdf:first sht:A ; rdf:rest rdf:nil, rdf:nil2 .
`)
	_, err := newProjector(idx, nil).Project(rdf.IRI(manifestIRI+"#t"), NegativeStructure)
	if !errors.Is(err, rdf.ErrMalformedCollection) {
		t.Errorf("error = %v, want ErrMalformedCollection", err)
	}
}

func TestProject_AbsentFieldsAreOmitted(t *testing.T) {
	idx := loadIndex(t, `<#bare> a sht:RepresentationTest .`)
	got, err := newProjector(idx, nil).Project(rdf.IRI(manifestIRI+"#bare"), RepresentationTest)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if s := marshal(t, got.Record); s != `{"@id":"#bare","@type":"RepresentationTest"}` {
		t.Errorf("record = %s", s)
	}
	if got.HasName {
		t.Error("HasName = true for an entry without mf:name")
	}
}
