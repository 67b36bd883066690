package diag

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Severity of a diagnostic. Only errors abort emission.
type Severity int

const (
	SeverityWarn Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Code classifies a diagnostic.
type Code string

const (
	CodeUnexpectedType Code = "unexpected-type"
	CodeUnreferenced   Code = "unreferenced"
	CodeNoDefinition   Code = "no-definition"
	CodeMissingFile    Code = "missing-file"
	CodeLabel          Code = "label"
)

// Phase orders diagnostics by the pass that produced them.
type Phase int

const (
	PhaseTypes Phase = iota
	PhaseProjection
	PhaseReferences
)

// Diagnostic is one integrity finding.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string

	// Phase and Seq give diagnostics a deterministic order regardless of
	// which worker produced them. Seq is the declared index of the source
	// entry, or the discovery index for whole-graph checks.
	Phase Phase
	Seq   int
}

func (d Diagnostic) String() string {
	return d.Severity.String() + ": " + d.Message
}

// Report accumulates diagnostics for one run. The zero value is ready to use.
// A Report is not safe for concurrent use; workers fill their own Report and
// the owner merges them.
type Report struct {
	items []Diagnostic
}

// Add appends d.
func (r *Report) Add(d Diagnostic) { r.items = append(r.items, d) }

// Merge appends every diagnostic of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.items = append(r.items, other.items...)
}

// Items returns the diagnostics sorted by phase, then sequence, then
// insertion order.
func (r *Report) Items() []Diagnostic {
	out := make([]Diagnostic, len(r.items))
	copy(out, r.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Phase != out[j].Phase {
			return out[i].Phase < out[j].Phase
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}

// Len returns the number of diagnostics.
func (r *Report) Len() int { return len(r.items) }

// Errors counts error-severity diagnostics.
func (r *Report) Errors() int { return r.count(SeverityError) }

// Warnings counts warning-severity diagnostics.
func (r *Report) Warnings() int { return r.count(SeverityWarn) }

// Has reports whether any diagnostic carries code c.
func (r *Report) Has(c Code) bool {
	for _, d := range r.items {
		if d.Code == c {
			return true
		}
	}
	return false
}

// Messages returns the messages of Items, in order.
func (r *Report) Messages() []string {
	items := r.Items()
	out := make([]string, len(items))
	for i, d := range items {
		out[i] = d.Message
	}
	return out
}

// Print writes one line per diagnostic.
func (r *Report) Print(w io.Writer) {
	for _, d := range r.Items() {
		fmt.Fprintln(w, d.String())
	}
}

// Summary returns e.g. "2 errors, 1 warning".
func (r *Report) Summary() string {
	return plural(r.Errors(), "error") + ", " + plural(r.Warnings(), "warning")
}

func (r *Report) count(s Severity) int {
	n := 0
	for _, d := range r.items {
		if d.Severity == s {
			n++
		}
	}
	return n
}

func plural(n int, noun string) string {
	if n == 1 {
		return printer.Sprintf("%d %s", n, noun)
	}
	return printer.Sprintf("%d %ss", n, noun)
}
