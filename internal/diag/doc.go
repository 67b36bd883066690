// Package diag carries the run mode, the diagnostics accumulator threaded
// through a projection run, and the structured logger used by the CLI.
package diag
