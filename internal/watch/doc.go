// Package watch re-runs manifest generation when files in a test directory
// change. Events are debounced per directory so that an editor's
// write-rename sequence triggers one regeneration.
package watch
