package assemble

import "errors"

// Fatal errors. Each aborts the run before the diagnostics phase.
var (
	ErrParse             = errors.New("parse error")
	ErrNoManifest        = errors.New("no mf:Manifest subject")
	ErrDuplicateManifest = errors.New("more than one mf:Manifest subject")
	ErrMissingEntries    = errors.New("manifest must have exactly one mf:entries")
)
