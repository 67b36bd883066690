// Package suite discovers the test directories of a conformance suite. Each
// test directory holds one manifest.ttl whose projection is written next to
// it as manifest.jsonld.
package suite
