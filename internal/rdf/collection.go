package rdf

import (
	"errors"
	"fmt"
)

// DefaultMaxHops bounds collection walks when no explicit limit is set.
const DefaultMaxHops = 1 << 16

// ErrMalformedCollection is returned for a list node with a missing or
// duplicated rdf:first/rdf:rest, or a chain longer than the hop limit.
var ErrMalformedCollection = errors.New("malformed collection")

// Walker expands RDF collections stored in an Index.
type Walker struct {
	idx     *Index
	maxHops int
}

// NewWalker returns a Walker over idx. maxHops <= 0 selects DefaultMaxHops.
func NewWalker(idx *Index, maxHops int) *Walker {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	return &Walker{idx: idx, maxHops: maxHops}
}

// IsList reports whether head is rdf:nil or a node carrying rdf:first.
func (w *Walker) IsList(head Term) bool {
	if head.IsIRI() && head.Value == RDFNil {
		return true
	}
	if head.IsLiteral() {
		return false
	}
	_, ok := w.idx.First(head, RDFFirst)
	return ok
}

// Expand returns the payloads of the collection starting at head, in order.
func (w *Walker) Expand(head Term) ([]Term, error) {
	var out []Term
	node := head
	for hops := 0; ; hops++ {
		if node.IsIRI() && node.Value == RDFNil {
			return out, nil
		}
		if hops >= w.maxHops {
			return nil, fmt.Errorf("%w: %s exceeds %d nodes (cycle?)", ErrMalformedCollection, head, w.maxHops)
		}
		if node.IsLiteral() {
			return nil, fmt.Errorf("%w: literal %s in list position", ErrMalformedCollection, node)
		}
		first, err := w.unique(node, RDFFirst)
		if err != nil {
			return nil, err
		}
		rest, err := w.unique(node, RDFRest)
		if err != nil {
			return nil, err
		}
		out = append(out, first)
		node = rest
	}
}

func (w *Walker) unique(node Term, predicate string) (Term, error) {
	objs := w.idx.Objects(node, predicate)
	switch len(objs) {
	case 1:
		return objs[0], nil
	case 0:
		return Term{}, fmt.Errorf("%w: %s has no <%s>", ErrMalformedCollection, node, predicate)
	default:
		return Term{}, fmt.Errorf("%w: %s has %d <%s> values", ErrMalformedCollection, node, len(objs), predicate)
	}
}
