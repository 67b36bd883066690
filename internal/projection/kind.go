package projection

import (
	"strings"

	"github.com/shexspec/mfgen/internal/rdf"
)

// Kind is the local name of a test class in the sht: namespace.
type Kind string

const (
	ValidationTest     Kind = "ValidationTest"
	ValidationFailure  Kind = "ValidationFailure"
	RepresentationTest Kind = "RepresentationTest"
	NegativeSyntax     Kind = "NegativeSyntax"
	NegativeStructure  Kind = "NegativeStructure"
)

// Kinds is the closed set of recognized test kinds.
var Kinds = []Kind{
	ValidationTest,
	ValidationFailure,
	RepresentationTest,
	NegativeSyntax,
	NegativeStructure,
}

// KindOf maps a class IRI to a recognized kind.
func KindOf(iri string) (Kind, bool) {
	if !strings.HasPrefix(iri, rdf.NSSHT) {
		return "", false
	}
	k := Kind(iri[len(rdf.NSSHT):])
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// IRI returns the class IRI of k.
func (k Kind) IRI() string { return rdf.NSSHT + string(k) }

// RequiresAction reports whether entries of this kind carry their references
// on exactly one mf:action node.
func (k Kind) RequiresAction() bool {
	return k == ValidationTest || k == ValidationFailure
}
