// Package config resolves run settings from the project config file
// (.mfgen.yaml), MFGEN_* environment variables and command-line flags,
// in viper's usual precedence.
package config
