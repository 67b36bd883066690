package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"CLIName", CLIName(), "mfgen"},
		{"ConfigFile", ConfigFile(), ".mfgen.yaml"},
		{"EnvPrefix", EnvPrefix(), "MFGEN"},
		{"GoModule", GoModule(), "github.com/shexspec/mfgen"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("suite_iri"); got != "MFGEN_SUITE_IRI" {
		t.Errorf("EnvVar(suite_iri) = %q, want MFGEN_SUITE_IRI", got)
	}
}
