package rdf

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the three RDF term variants.
type Kind uint8

const (
	KindIRI Kind = iota + 1
	KindBlank
	KindLiteral
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Term is an IRI, a blank node label, or a literal. Terms are compared by
// value, which makes them usable as map keys.
type Term struct {
	Kind     Kind
	Value    string // IRI, blank node label (without "_:"), or lexical form
	Language string // literals only
	Datatype string // literals only; empty means xsd:string
}

// IRI returns an IRI term.
func IRI(v string) Term { return Term{Kind: KindIRI, Value: v} }

// Blank returns a blank node term with the given label.
func Blank(label string) Term { return Term{Kind: KindBlank, Value: label} }

// Literal returns a plain string literal.
func Literal(v string) Term { return Term{Kind: KindLiteral, Value: v} }

// LangLiteral returns a language-tagged literal.
func LangLiteral(v, lang string) Term {
	return Term{Kind: KindLiteral, Value: v, Language: strings.ToLower(lang)}
}

// TypedLiteral returns a literal with an explicit datatype IRI.
func TypedLiteral(v, datatype string) Term {
	return Term{Kind: KindLiteral, Value: v, Datatype: datatype}
}

// IsIRI reports whether t is an IRI.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsBlank reports whether t is a blank node.
func (t Term) IsBlank() bool { return t.Kind == KindBlank }

// IsLiteral reports whether t is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsZero reports whether t is the zero Term.
func (t Term) IsZero() bool { return t.Kind == 0 }

// Key returns a string that identifies a node (IRI or blank node) in the
// index. Blank nodes are prefixed so they never collide with IRIs.
func (t Term) Key() string {
	if t.Kind == KindBlank {
		return "_:" + t.Value
	}
	return t.Value
}

// String renders the term in N-Triples syntax.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		s := strconv.Quote(t.Value)
		if t.Language != "" {
			return s + "@" + t.Language
		}
		if t.Datatype != "" {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	default:
		return "<?>"
	}
}

// Triple is a single subject-predicate-object statement. Subjects are IRIs
// or blank nodes and predicates are always IRIs.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// NewTriple validates the positional constraints and returns a Triple.
func NewTriple(s, p, o Term) (Triple, error) {
	if s.Kind != KindIRI && s.Kind != KindBlank {
		return Triple{}, fmt.Errorf("subject %s must be an IRI or blank node", s)
	}
	if p.Kind != KindIRI {
		return Triple{}, fmt.Errorf("predicate %s must be an IRI", p)
	}
	if o.IsZero() {
		return Triple{}, fmt.Errorf("object of %s %s is empty", s, p)
	}
	return Triple{Subject: s, Predicate: p, Object: o}, nil
}

// String renders the triple as an N-Triples line without the trailing newline.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}
