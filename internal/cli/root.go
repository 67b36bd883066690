package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shexspec/mfgen/internal/branding"
	"github.com/shexspec/mfgen/internal/config"
	"github.com/shexspec/mfgen/internal/diag"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	cfgFile string
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` turns the Turtle manifest of a conformance test directory into an
ordered JSON-LD document, one record per declared test, and reports
integrity problems such as unreferenced tests and missing files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := diag.NewLogger(verbose)
		if err != nil {
			return err
		}
		logger = l

		// The version command must work with any config in place.
		if cmd.Name() == "version" {
			return nil
		}
		if err := config.Load(cfgFile); err != nil {
			return err
		}
		return config.CheckRequires(config.Get(config.KeyRequires), buildVersion)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./"+config.FilePath()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline progress to stderr")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
