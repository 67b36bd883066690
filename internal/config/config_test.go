package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/shexspec/mfgen/internal/diag"
)

func setup(t *testing.T, content string) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), ".mfgen.yaml")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := setup(t, "")
	if err := Load(path); err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}

	viper.Reset()
	t.Chdir(t.TempDir())
	if err := Load(""); err != nil {
		t.Fatalf("Load(\"\") without a config file: %v", err)
	}
	s, err := Current()
	if err != nil {
		t.Fatal(err)
	}
	if s.Mode != diag.ModeWarn {
		t.Errorf("Mode = %v, want warn", s.Mode)
	}
	if s.SuiteIRI != DefaultSuiteIRI {
		t.Errorf("SuiteIRI = %q, want %q", s.SuiteIRI, DefaultSuiteIRI)
	}
	if s.Workers != 4 {
		t.Errorf("Workers = %d, want 4", s.Workers)
	}
	if s.Format != "json" {
		t.Errorf("Format = %q, want json", s.Format)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := setup(t, "mode: err\nworkers: 8\nsuite_iri: http://example.org/tests\njsonld_context: true\n")
	t.Setenv("MFGEN_WORKERS", "2")

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, err := Current()
	if err != nil {
		t.Fatal(err)
	}
	if s.Mode != diag.ModeErr {
		t.Errorf("Mode = %v, want err", s.Mode)
	}
	if s.Workers != 2 {
		t.Errorf("Workers = %d, want the environment value 2", s.Workers)
	}
	if s.SuiteIRI != "http://example.org/tests/" {
		t.Errorf("SuiteIRI = %q, want a trailing slash", s.SuiteIRI)
	}
	if !s.Context {
		t.Error("Context = false, want true")
	}
}

func TestCurrent_BadMode(t *testing.T) {
	path := setup(t, "mode: loud\n")
	if err := Load(path); err != nil {
		t.Fatal(err)
	}
	if _, err := Current(); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestSet(t *testing.T) {
	path := setup(t, "mode: silent\n")
	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if err := Set(KeyWorkers, "6"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := Get(KeyWorkers); got != "6" {
		t.Errorf("Get(workers) = %q, want 6", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "workers: 6") || !strings.Contains(content, "mode: silent") {
		t.Errorf("config file =\n%s", content)
	}
	if strings.Contains(content, "suite_iri") {
		t.Errorf("defaults were written to the config file:\n%s", content)
	}
}

func TestSet_Errors(t *testing.T) {
	path := setup(t, "")
	_ = Load(path)

	if err := Set("colour", "blue"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("unknown key: err = %v, want ErrUnknownKey", err)
	}
	if err := Set(KeyWorkers, "many"); err == nil {
		t.Error("non-numeric workers: expected error")
	}
	if err := Set(KeyContext, "maybe"); err == nil {
		t.Error("non-boolean jsonld_context: expected error")
	}
}

func TestCheckRequires(t *testing.T) {
	tests := []struct {
		constraint string
		version    string
		wantErr    bool
	}{
		{"", "1.0.0", false},
		{">= 1.2", "dev", false},
		{">= 1.2", "v1.3.0", false},
		{"~1.2", "1.2.7", false},
		{">= 2.0", "1.9.9", true},
		{"not a constraint", "1.0.0", true},
		{">= 1.0", "garbage", true},
	}
	for _, tt := range tests {
		err := CheckRequires(tt.constraint, tt.version)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckRequires(%q, %q) error = %v, wantErr %v", tt.constraint, tt.version, err, tt.wantErr)
		}
	}
}
