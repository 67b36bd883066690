// Package projection turns one test entry of a manifest graph into an output
// record. Each test kind has a fixed, ordered table of rules; a rule names the
// predicate to read, whether it is read from the entry or from its mf:action
// node, the output field, and the decoder that shapes the value.
//
// A predicate with no value yields no field. File references are made
// relative to the manifest directory and probed on disk; missing files are
// returned to the caller rather than reported here, so that the caller can
// deduplicate them across entries.
package projection
