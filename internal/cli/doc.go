// Package cli defines the Cobra command tree for the mfgen CLI. Each file
// in this package registers one top-level command (gen, check, scaffold,
// config, version) with the root command. Commands resolve settings through
// internal/config and delegate the work to the internal packages; they only
// handle flags, output placement and printing diagnostics.
package cli
