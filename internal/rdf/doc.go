// Package rdf holds the in-memory graph model used by the projection engine:
// terms and triples, a predicate-keyed triple index, the prefix resolver that
// maps compact names such as "mf:entries" to IRIs, and the walker that turns
// an RDF collection (rdf:first/rdf:rest chain) into an ordered slice.
//
// An Index is built once per run and is read-only after Freeze, so it can be
// shared by concurrent readers without locking.
package rdf
