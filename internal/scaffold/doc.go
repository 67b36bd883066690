// Package scaffold generates manifest.ttl for test directories whose tests
// are one schema file each (negative syntax and negative structure tests).
// Entries are derived from the *.shex files in the directory, rendered from
// an embedded template and checked by projecting the result before it is
// written.
package scaffold
