package integrity

import (
	"fmt"
	"strings"

	"github.com/shexspec/mfgen/internal/diag"
	"github.com/shexspec/mfgen/internal/projection"
	"github.com/shexspec/mfgen/internal/rdf"
)

// TypedSubject is one rdf:type statement: a subject key and its class IRI.
type TypedSubject struct {
	Subject string
	Class   string
}

// Validate checks declared entries against typed subjects.
//
// Unexpected classes are reported in every mode. In modes that run checks,
// each recognized subject missing from declared is reported once, and all
// declared entries without a recognized definition are reported together.
func Validate(declared []string, typed []TypedSubject, mode diag.Mode) *diag.Report {
	report := &diag.Report{}
	sev := mode.Severity()

	isDeclared := make(map[string]bool, len(declared))
	for _, d := range declared {
		isDeclared[d] = true
	}

	defined := make(map[string]bool)
	unreferenced := make(map[string]bool)
	for i, ts := range typed {
		if _, ok := projection.KindOf(ts.Class); !ok {
			if ts.Class != rdf.NSMF+"Manifest" {
				report.Add(diag.Diagnostic{
					Severity: sev,
					Code:     diag.CodeUnexpectedType,
					Message:  fmt.Sprintf("test %s has unexpected type %s", ts.Subject, ts.Class),
					Phase:    diag.PhaseTypes,
					Seq:      i,
				})
			}
			continue
		}
		if isDeclared[ts.Subject] {
			defined[ts.Subject] = true
			continue
		}
		if !mode.Checks() || unreferenced[ts.Subject] {
			continue
		}
		unreferenced[ts.Subject] = true
		report.Add(diag.Diagnostic{
			Severity: sev,
			Code:     diag.CodeUnreferenced,
			Message:  "unreferenced test: " + ts.Subject,
			Phase:    diag.PhaseTypes,
			Seq:      i,
		})
	}

	if !mode.Checks() {
		return report
	}

	var undefined []string
	seen := make(map[string]bool)
	for _, d := range declared {
		if !defined[d] && !seen[d] {
			seen[d] = true
			undefined = append(undefined, d)
		}
	}
	if len(undefined) > 0 {
		report.Add(diag.Diagnostic{
			Severity: sev,
			Code:     diag.CodeNoDefinition,
			Message:  "no definition for " + strings.Join(undefined, ", "),
			Phase:    diag.PhaseReferences,
		})
	}
	return report
}

// CheckLabel compares an entry's mf:name with the fragment its IRI has
// relative to the manifest IRI. Entries outside the manifest document and
// entries without an mf:name are not checked.
func CheckLabel(entry, manifestIRI, name string, hasName bool, seq int, mode diag.Mode) (diag.Diagnostic, bool) {
	if !mode.Checks() || !hasName || !strings.HasPrefix(entry, manifestIRI+"#") {
		return diag.Diagnostic{}, false
	}
	expected := entry[len(manifestIRI)+1:]
	if expected == name {
		return diag.Diagnostic{}, false
	}
	return diag.Diagnostic{
		Severity: mode.Severity(),
		Code:     diag.CodeLabel,
		Message:  fmt.Sprintf("expected label %q ; got %q", expected, name),
		Phase:    diag.PhaseProjection,
		Seq:      seq,
	}, true
}

// MissingFiles reports each missing path once, attributed to the first entry
// (in declared order) that references it. perEntry[i] holds the missing
// paths of declared entry i.
func MissingFiles(perEntry [][]string, mode diag.Mode) *diag.Report {
	report := &diag.Report{}
	if !mode.Checks() {
		return report
	}
	seen := make(map[string]bool)
	for i, paths := range perEntry {
		for _, p := range paths {
			if seen[p] {
				continue
			}
			seen[p] = true
			report.Add(diag.Diagnostic{
				Severity: mode.Severity(),
				Code:     diag.CodeMissingFile,
				Message:  "non-existent file: " + p,
				Phase:    diag.PhaseProjection,
				Seq:      i,
			})
		}
	}
	return report
}
