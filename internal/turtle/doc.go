// Package turtle reads Turtle and N-Triples documents into rdf triples.
//
// It covers the part of Turtle that test-suite manifests use: prefix and
// base directives in both @-form and SPARQL form, relative IRIs, prefixed
// names, the "a" keyword, predicate and object lists, labeled and anonymous
// blank nodes, collections, string literals (short and long forms) with
// language tags or datatypes, and numeric and boolean shorthand literals.
package turtle
