// Package integrity cross-checks a manifest's declared entry list against
// the typed test subjects present in the graph, and turns per-entry findings
// (label mismatches, missing files) into diagnostics. Nothing here is fatal;
// the run mode decides each diagnostic's severity.
package integrity
