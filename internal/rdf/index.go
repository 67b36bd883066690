package rdf

import "sync/atomic"

// Index is an insertion-ordered triple store keyed by predicate IRI. Every
// query the projection engine issues binds the predicate, so a single hash
// level plus a linear filter over subject and object is enough.
type Index struct {
	byPredicate map[string][]Triple
	seen        map[Triple]struct{}
	size        int
	frozen      atomic.Bool
}

// NewIndex returns an empty, mutable index.
func NewIndex() *Index {
	return &Index{byPredicate: make(map[string][]Triple), seen: make(map[Triple]struct{})}
}

// Add appends one triple. A graph is a set, so a triple already present is
// dropped and keeps its first position. It panics once the index has been
// frozen.
func (x *Index) Add(t Triple) {
	if x.frozen.Load() {
		panic("rdf: Add on frozen index")
	}
	if _, dup := x.seen[t]; dup {
		return
	}
	x.seen[t] = struct{}{}
	p := t.Predicate.Value
	x.byPredicate[p] = append(x.byPredicate[p], t)
	x.size++
}

// AddAll appends triples in order.
func (x *Index) AddAll(ts []Triple) {
	for _, t := range ts {
		x.Add(t)
	}
}

// Freeze marks the index read-only. Reads are safe for concurrent use after
// Freeze returns.
func (x *Index) Freeze() { x.frozen.Store(true) }

// Len returns the number of triples in the index.
func (x *Index) Len() int { return x.size }

// Find returns the triples with the given predicate whose subject and object
// match the optional subject and object patterns (nil is a wildcard). The
// result preserves insertion order. An empty result is not an error.
func (x *Index) Find(subject *Term, predicate string, object *Term) []Triple {
	bucket := x.byPredicate[predicate]
	if subject == nil && object == nil {
		out := make([]Triple, len(bucket))
		copy(out, bucket)
		return out
	}
	var out []Triple
	for _, t := range bucket {
		if subject != nil && t.Subject != *subject {
			continue
		}
		if object != nil && t.Object != *object {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Objects returns the objects of all (subject, predicate, *) triples.
func (x *Index) Objects(subject Term, predicate string) []Term {
	ts := x.Find(&subject, predicate, nil)
	out := make([]Term, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Object)
	}
	return out
}

// Subjects returns the subjects of all (*, predicate, object) triples.
func (x *Index) Subjects(predicate string, object Term) []Term {
	ts := x.Find(nil, predicate, &object)
	out := make([]Term, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Subject)
	}
	return out
}

// First returns the object of the first (subject, predicate, *) triple in
// insertion order.
func (x *Index) First(subject Term, predicate string) (Term, bool) {
	for _, t := range x.byPredicate[predicate] {
		if t.Subject == subject {
			return t.Object, true
		}
	}
	return Term{}, false
}
