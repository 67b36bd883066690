package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/shexspec/mfgen/internal/assemble"
	"github.com/shexspec/mfgen/internal/config"
	"github.com/shexspec/mfgen/internal/diag"
	"github.com/shexspec/mfgen/internal/suite"
	"github.com/shexspec/mfgen/internal/watch"
)

// ErrAborted is returned when diagnostics withheld the output.
var ErrAborted = errors.New("output withheld")

var (
	genWarn    bool
	genErr     bool
	genSilent  bool
	genAll     bool
	genPattern string
	genWatch   bool
)

var genCmd = &cobra.Command{
	Use:   "gen <manifest.ttl | suite-root>",
	Short: "Project a Turtle manifest into JSON-LD",
	Long: `Project the manifest of a test directory into manifest.jsonld form.

The manifest IRI is <suite_iri><test-dir>/manifest, where <test-dir> is the
name of the directory holding the manifest. File references are checked
against --base-dir, which defaults to that directory.

Modes:
  -w, --warn    report problems and write the output (default)
  -e, --err     report problems and write nothing if there are any
      --silent  skip file, label and reference checks

With --all the argument is a suite root; every manifest matching --pattern
is projected into manifest.jsonld next to it.`,
	Args: cobra.ExactArgs(1),
	RunE: runGen,
}

func init() {
	f := genCmd.Flags()
	f.StringP("output", "o", "", "Output file (default stdout, or manifest.jsonld per suite with --all)")
	f.String("format", "json", "Output format: json or yaml")
	f.String("base-dir", "", "Directory file references are resolved against")
	f.String("suite-iri", config.DefaultSuiteIRI, "IRI of the suite root")
	f.Int("workers", 4, "Entries projected in parallel")
	f.Int("max-list-length", 0, "Longest RDF collection accepted (0 = default)")
	f.Bool("context", false, "Wrap the document in a JSON-LD @context")
	f.BoolVarP(&genWarn, "warn", "w", false, "Report problems as warnings")
	f.BoolVarP(&genErr, "err", "e", false, "Report problems as errors and withhold output")
	f.BoolVar(&genSilent, "silent", false, "Skip integrity checks")
	f.BoolVar(&genAll, "all", false, "Project every manifest under a suite root")
	f.StringVar(&genPattern, "pattern", suite.DefaultPattern, "Manifest glob used with --all")
	f.BoolVar(&genWatch, "watch", false, "Regenerate when files change")
	genCmd.MarkFlagsMutuallyExclusive("warn", "err", "silent")
	genCmd.MarkFlagsMutuallyExclusive("all", "output")

	for key, flag := range map[string]string{
		config.KeyOutput:        "output",
		config.KeyFormat:        "format",
		config.KeyBaseDir:       "base-dir",
		config.KeySuiteIRI:      "suite-iri",
		config.KeyWorkers:       "workers",
		config.KeyMaxListLength: "max-list-length",
		config.KeyContext:       "context",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	switch {
	case genWarn:
		viper.Set(config.KeyMode, diag.ModeWarn.String())
	case genErr:
		viper.Set(config.KeyMode, diag.ModeErr.String())
	case genSilent:
		viper.Set(config.KeyMode, diag.ModeSilent.String())
	}
	settings, err := config.Current()
	if err != nil {
		return err
	}
	g, err := newGenerator(settings, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var targets []target
	if genAll {
		suites, err := suite.Discover(args[0], genPattern)
		if err != nil {
			return err
		}
		if len(suites) == 0 {
			return fmt.Errorf("no manifests match %q under %s", genPattern, args[0])
		}
		for _, s := range suites {
			targets = append(targets, target{Suite: s, Output: s.OutputPath})
		}
	} else {
		s, err := suite.ForManifest(args[0])
		if err != nil {
			return err
		}
		targets = append(targets, target{Suite: s, Output: settings.Output})
	}

	failed := g.generateAll(ctx, targets)
	if genWatch {
		return g.watch(ctx, targets)
	}
	if failed > 0 {
		if len(targets) == 1 {
			return g.lastErr
		}
		return fmt.Errorf("%d of %d manifests failed", failed, len(targets))
	}
	return nil
}

// target is a suite and where its projection goes ("" or "-" is stdout).
type target struct {
	suite.Suite
	Output string
}

func (t target) toStdout() bool { return t.Output == "" || t.Output == "-" }

// generator projects suites with fixed settings.
type generator struct {
	settings *config.Settings
	format   assemble.Format
	log      *zap.Logger
	stdout   io.Writer
	stderr   io.Writer
	lastErr  error
}

func newGenerator(s *config.Settings, log *zap.Logger, stdout, stderr io.Writer) (*generator, error) {
	format, err := assemble.ParseFormat(s.Format)
	if err != nil {
		return nil, err
	}
	return &generator{settings: s, format: format, log: diag.OrNop(log), stdout: stdout, stderr: stderr}, nil
}

// generateAll projects each target, reporting failures as it goes, and
// returns the number that failed.
func (g *generator) generateAll(ctx context.Context, targets []target) int {
	failed := 0
	for _, t := range targets {
		if err := g.generate(ctx, t); err != nil {
			failed++
			g.lastErr = err
			if len(targets) > 1 {
				fmt.Fprintf(g.stderr, "error: %v\n", err)
			}
		}
	}
	return failed
}

// generate projects one target and writes the result unless diagnostics
// withheld it.
func (g *generator) generate(ctx context.Context, t target) error {
	baseDir := g.settings.BaseDir
	if baseDir == "" {
		baseDir = t.Dir
	}
	a := assemble.New(assemble.Options{
		Mode:          g.settings.Mode,
		BaseDir:       baseDir,
		SuiteIRI:      g.settings.SuiteIRI,
		Workers:       g.settings.Workers,
		MaxListLength: g.settings.MaxListLength,
		Context:       g.settings.Context,
		Logger:        g.log.With(zap.String("suite", t.Name)),
	})

	f, err := os.Open(t.ManifestPath)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := a.Run(ctx, f, t.ManifestIRI(g.settings.SuiteIRI))
	if err != nil {
		return fmt.Errorf("%s: %w", t.ManifestPath, err)
	}
	res.Diagnostics.Print(g.stderr)
	if !res.Emitted() {
		return fmt.Errorf("%s: %s: %w", t.ManifestPath, res.Diagnostics.Summary(), ErrAborted)
	}

	if t.toStdout() {
		return assemble.Emit(g.stdout, res.Document, g.format)
	}
	if err := assemble.WriteFile(t.Output, res.Document, g.format); err != nil {
		return err
	}
	g.log.Info("wrote manifest",
		zap.String("path", t.Output),
		zap.Int("entries", len(res.Document.Entries)),
		zap.String("diagnostics", res.Diagnostics.Summary()))
	return nil
}

// watch regenerates targets on change until ctx is canceled.
func (g *generator) watch(ctx context.Context, targets []target) error {
	bySuite := make(map[string]target, len(targets))
	suites := make([]suite.Suite, 0, len(targets))
	var outputs []string
	for _, t := range targets {
		bySuite[t.Dir] = t
		suites = append(suites, t.Suite)
		if !t.toStdout() {
			outputs = append(outputs, t.Output)
		}
	}
	w, err := watch.New(suites, func(ctx context.Context, s suite.Suite) error {
		return g.generate(ctx, bySuite[s.Dir])
	}, watch.Options{Logger: g.log, Ignore: outputs})
	if err != nil {
		return err
	}
	fmt.Fprintf(g.stderr, "watching %d director%s; press Ctrl-C to stop\n", len(suites), plural(len(suites), "y", "ies"))
	return w.Run(ctx)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
