package scaffold

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/shexspec/mfgen/internal/assemble"
	"github.com/shexspec/mfgen/internal/diag"
	"github.com/shexspec/mfgen/internal/platform"
	"github.com/shexspec/mfgen/internal/projection"
	"github.com/shexspec/mfgen/internal/suite"
)

//go:embed templates/manifest.ttl.tmpl
var templateFS embed.FS

// ManifestName is the file name of a generated manifest.
const ManifestName = "manifest.ttl"

var (
	ErrUnsupportedKind = errors.New("manifests can only be generated for NegativeSyntax and NegativeStructure tests")
	ErrExists          = errors.New("manifest already exists")
	ErrNoSchemas       = errors.New("no .shex files found")
)

var defaultComments = map[projection.Kind]string{
	projection.NegativeSyntax:    "ShEx negative syntax tests",
	projection.NegativeStructure: "ShEx negative structure tests",
}

// Options configures Generate.
type Options struct {
	Dir  string
	Kind projection.Kind
	// Comment defaults to a description of Kind.
	Comment string
	// SuiteIRI is the IRI of the suite root the directory belongs to.
	SuiteIRI string
	// Force overwrites an existing manifest.
	Force bool
}

// Test is one generated entry.
type Test struct {
	ID   string // file name without .shex
	File string
}

// Data holds the template variables.
type Data struct {
	ManifestIRI string
	Comment     string
	Kind        projection.Kind
	Tests       []Test
}

// Result holds the outcome of a generation.
type Result struct {
	Path     string
	Tests    []string
	Warnings []string
}

// Generate writes manifest.ttl into opts.Dir.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	if opts.Kind != projection.NegativeSyntax && opts.Kind != projection.NegativeStructure {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, opts.Kind)
	}
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, err
	}
	outPath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(outPath); err == nil && !opts.Force {
		return nil, fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, outPath)
	}

	tests, err := collectTests(dir)
	if err != nil {
		return nil, err
	}

	data := &Data{
		ManifestIRI: suite.Suite{Name: filepath.Base(dir)}.ManifestIRI(opts.SuiteIRI),
		Comment:     opts.Comment,
		Kind:        opts.Kind,
		Tests:       tests,
	}
	if data.Comment == "" {
		data.Comment = defaultComments[opts.Kind]
	}

	out, err := Render(data)
	if err != nil {
		return nil, err
	}

	result := &Result{Path: outPath}
	for _, t := range tests {
		result.Tests = append(result.Tests, t.ID)
	}

	// Project the rendered manifest so a broken template never reaches disk.
	a := assemble.New(assemble.Options{Mode: diag.ModeSilent, BaseDir: dir, SuiteIRI: opts.SuiteIRI})
	res, err := a.Run(ctx, bytes.NewReader(out), data.ManifestIRI)
	if err != nil {
		return nil, fmt.Errorf("generated manifest does not project: %w", err)
	}
	result.Warnings = append(result.Warnings, res.Diagnostics.Messages()...)
	if n := len(res.Document.Entries); n != len(tests) {
		return nil, fmt.Errorf("generated manifest projects %d entries, want %d", n, len(tests))
	}

	if err := platform.WriteFileAtomic(outPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}
	return result, nil
}

// Render executes the manifest template.
func Render(data *Data) ([]byte, error) {
	tmpl, err := template.New("manifest.ttl.tmpl").
		Funcs(template.FuncMap{"quote": quote}).
		ParseFS(templateFS, "templates/manifest.ttl.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	return buf.Bytes(), nil
}

// collectTests lists the schema files of dir in name order.
func collectTests(dir string) ([]Test, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var tests []Test
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".shex") {
			continue
		}
		tests = append(tests, Test{ID: strings.TrimSuffix(name, ".shex"), File: name})
	}
	if len(tests) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSchemas, dir)
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].File < tests[j].File })
	return tests, nil
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

// quote renders s as a Turtle string literal.
func quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}
