// Package manifest reads and validates emitted manifest documents (JSON or
// YAML) against the embedded JSON Schema of the output format.
package manifest
