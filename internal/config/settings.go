package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"

	"github.com/shexspec/mfgen/internal/diag"
)

// Settings is the resolved configuration of one run.
type Settings struct {
	Mode          diag.Mode
	BaseDir       string
	Output        string // "-" or "" is stdout unless a suite output applies
	Format        string
	SuiteIRI      string
	Workers       int
	MaxListLength int
	Context       bool
	Requires      string
}

// Current returns the settings viper resolves now.
func Current() (*Settings, error) {
	mode, err := diag.ParseMode(viper.GetString(KeyMode))
	if err != nil {
		return nil, err
	}
	s := &Settings{
		Mode:          mode,
		BaseDir:       viper.GetString(KeyBaseDir),
		Output:        viper.GetString(KeyOutput),
		Format:        viper.GetString(KeyFormat),
		SuiteIRI:      viper.GetString(KeySuiteIRI),
		Workers:       viper.GetInt(KeyWorkers),
		MaxListLength: viper.GetInt(KeyMaxListLength),
		Context:       viper.GetBool(KeyContext),
		Requires:      viper.GetString(KeyRequires),
	}
	if s.Workers < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", KeyWorkers, s.Workers)
	}
	if s.MaxListLength < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", KeyMaxListLength, s.MaxListLength)
	}
	if s.SuiteIRI != "" && !strings.HasSuffix(s.SuiteIRI, "/") {
		s.SuiteIRI += "/"
	}
	return s, nil
}

// CheckRequires verifies that version satisfies constraint. An empty
// constraint and development builds pass.
func CheckRequires(constraint, version string) error {
	if constraint == "" || version == "" || version == "dev" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing %s %q: %w", KeyRequires, constraint, err)
	}
	v, err := parseSemver(version)
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", version, err)
	}
	if ok, errs := c.Validate(v); !ok {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("version %s does not satisfy %s: %s", version, constraint, strings.Join(msgs, "; "))
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
