// Package assemble drives one projection run over a manifest graph:
//
//	Loading → Indexed → EntriesResolved → Projected → Reported → Emitted|Aborted
//
// Structural problems (unparseable input, a missing or duplicated manifest
// node, a broken entry list, an entry with an ambiguous action) stop the run
// with an error and no output. Integrity problems are collected for the whole
// pass and only then decide, according to the run mode, whether the document
// is emitted.
package assemble
