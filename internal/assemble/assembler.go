package assemble

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shexspec/mfgen/internal/diag"
	"github.com/shexspec/mfgen/internal/integrity"
	"github.com/shexspec/mfgen/internal/projection"
	"github.com/shexspec/mfgen/internal/rdf"
	"github.com/shexspec/mfgen/internal/turtle"
)

// DefaultWorkers is the projection parallelism when Options.Workers is unset.
const DefaultWorkers = 4

// Options configures an Assembler.
type Options struct {
	Mode diag.Mode
	// BaseDir is the directory file references are probed against.
	BaseDir string
	// SuiteIRI is the IRI of the suite root; references elsewhere in the
	// suite become "../" paths.
	SuiteIRI      string
	Workers       int
	MaxListLength int
	// Context wraps the document in a JSON-LD @context.
	Context bool
	Logger  *zap.Logger
}

// Result is the outcome of a run that reached the diagnostics phase.
type Result struct {
	State State
	// Document is nil when the run was aborted.
	Document    *Document
	Diagnostics *diag.Report
}

// Emitted reports whether the document may be written.
func (r *Result) Emitted() bool { return r.State == StateEmitted }

// Graph is an indexed input graph.
type Graph struct {
	Index    *rdf.Index
	Prefixes *rdf.Prefixes
}

// Assembler runs the projection pipeline. An Assembler holds no per-run
// state and may be reused.
type Assembler struct {
	opts Options
	log  *zap.Logger
}

// New returns an Assembler.
func New(opts Options) *Assembler {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Assembler{opts: opts, log: diag.OrNop(opts.Logger)}
}

// Run loads the Turtle document from r, with relative IRIs resolved against
// baseIRI, and assembles it.
func (a *Assembler) Run(ctx context.Context, r io.Reader, baseIRI string) (*Result, error) {
	g, err := a.Load(r, baseIRI)
	if err != nil {
		return nil, err
	}
	return a.Assemble(ctx, g)
}

// Load parses and indexes the input graph.
func (a *Assembler) Load(r io.Reader, baseIRI string) (*Graph, error) {
	a.log.Debug("assembly state", zap.Stringer("state", StateLoading), zap.String("base", baseIRI))
	parsed, err := turtle.Parse(r, baseIRI)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	idx := rdf.NewIndex()
	idx.AddAll(parsed.Triples)
	idx.Freeze()
	a.log.Debug("assembly state", zap.Stringer("state", StateIndexed), zap.Int("triples", idx.Len()))
	return &Graph{
		Index:    idx,
		Prefixes: rdf.NewPrefixes(parsed.Prefixes).With(rdf.DefaultPrefixes().Map()),
	}, nil
}

// Assemble projects an indexed graph into a document.
func (a *Assembler) Assemble(ctx context.Context, g *Graph) (*Result, error) {
	idx := g.Index
	walker := rdf.NewWalker(idx, a.opts.MaxListLength)

	manifest, err := findManifest(idx)
	if err != nil {
		return nil, err
	}
	declared, err := a.declaredEntries(idx, walker, manifest)
	if err != nil {
		return nil, err
	}
	a.log.Debug("assembly state", zap.Stringer("state", StateEntriesResolved),
		zap.String("manifest", manifest.Value), zap.Int("entries", len(declared)))

	typed, kinds := typedSubjects(idx)

	var prober *projection.Prober
	if a.opts.Mode.Checks() {
		prober = projection.NewProber(a.opts.BaseDir)
	}
	projector := projection.New(idx, walker, projection.Options{
		ManifestIRI: manifest.Value,
		Relativizer: projection.NewRelativizer(manifest.Value, a.opts.SuiteIRI),
		Prober:      prober,
		Prefixes:    g.Prefixes,
	})

	projections, err := a.project(ctx, projector, declared, kinds)
	if err != nil {
		return nil, err
	}
	a.log.Debug("assembly state", zap.Stringer("state", StateProjected))

	doc := &Document{ID: projector.ID(manifest.Value)}
	if c, ok := idx.First(manifest, rdf.NSRDFS+"comment"); ok {
		doc.Comment, doc.HasComment = c.Value, true
	}
	if a.opts.Context {
		doc.Context = []any{
			projection.Fields{{Key: "@base", Value: manifest.Value}},
			DefaultContextRef,
		}
	}

	report := &diag.Report{}
	missing := make([][]string, len(declared))
	declaredKeys := make([]string, len(declared))
	for i, d := range declared {
		declaredKeys[i] = d.Key()
		p := projections[i]
		if p == nil {
			continue
		}
		doc.Entries = append(doc.Entries, p.Record)
		missing[i] = p.Missing
		if d.IsIRI() {
			if l, bad := integrity.CheckLabel(d.Value, manifest.Value, p.Name, p.HasName, i, a.opts.Mode); bad {
				report.Add(l)
			}
		}
	}
	report.Merge(integrity.MissingFiles(missing, a.opts.Mode))
	report.Merge(integrity.Validate(declaredKeys, typed, a.opts.Mode))
	a.log.Debug("assembly state", zap.Stringer("state", StateReported),
		zap.Int("errors", report.Errors()), zap.Int("warnings", report.Warnings()))

	if report.Errors() > 0 {
		a.log.Debug("assembly state", zap.Stringer("state", StateAborted))
		return &Result{State: StateAborted, Diagnostics: report}, nil
	}
	a.log.Debug("assembly state", zap.Stringer("state", StateEmitted), zap.Int("records", len(doc.Entries)))
	return &Result{State: StateEmitted, Document: doc, Diagnostics: report}, nil
}

// project builds one projection per defined entry, in parallel. The slot
// for an undefined entry stays nil. When several entries fail, the error of
// the earliest declared one is returned.
func (a *Assembler) project(ctx context.Context, p *projection.Projector, declared []rdf.Term, kinds map[string]projection.Kind) ([]*projection.Projection, error) {
	out := make([]*projection.Projection, len(declared))
	errs := make([]error, len(declared))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.opts.Workers)
	for i, entry := range declared {
		kind, ok := kinds[entry.Key()]
		if !ok {
			continue
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			out[i], errs[i] = p.Project(entry, kind)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (a *Assembler) declaredEntries(idx *rdf.Index, walker *rdf.Walker, manifest rdf.Term) ([]rdf.Term, error) {
	heads := idx.Objects(manifest, rdf.NSMF+"entries")
	if len(heads) != 1 {
		return nil, fmt.Errorf("%w: %s has %d", ErrMissingEntries, manifest.Value, len(heads))
	}
	entries, err := walker.Expand(heads[0])
	if err != nil {
		return nil, fmt.Errorf("expanding entries of %s: %w", manifest.Value, err)
	}
	return entries, nil
}

func findManifest(idx *rdf.Index) (rdf.Term, error) {
	var found []rdf.Term
	seen := make(map[rdf.Term]bool)
	for _, s := range idx.Subjects(rdf.RDFType, rdf.IRI(rdf.NSMF+"Manifest")) {
		if !seen[s] {
			seen[s] = true
			found = append(found, s)
		}
	}
	switch len(found) {
	case 0:
		return rdf.Term{}, ErrNoManifest
	case 1:
		return found[0], nil
	default:
		return rdf.Term{}, fmt.Errorf("%w: %s and %s", ErrDuplicateManifest, found[0], found[1])
	}
}

// typedSubjects lists every rdf:type statement and maps each subject to its
// first recognized test kind.
func typedSubjects(idx *rdf.Index) ([]integrity.TypedSubject, map[string]projection.Kind) {
	ts := idx.Find(nil, rdf.RDFType, nil)
	typed := make([]integrity.TypedSubject, 0, len(ts))
	kinds := make(map[string]projection.Kind)
	for _, t := range ts {
		key := t.Subject.Key()
		typed = append(typed, integrity.TypedSubject{Subject: key, Class: t.Object.Value})
		if k, ok := projection.KindOf(t.Object.Value); ok {
			if _, dup := kinds[key]; !dup {
				kinds[key] = k
			}
		}
	}
	return typed, kinds
}
