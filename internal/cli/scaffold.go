package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shexspec/mfgen/internal/config"
	"github.com/shexspec/mfgen/internal/projection"
	"github.com/shexspec/mfgen/internal/scaffold"
)

var (
	scaffoldKind    string
	scaffoldComment string
	scaffoldForce   bool
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <dir>",
	Short: "Generate manifest.ttl for a directory of schema tests",
	Long: `Generate manifest.ttl for a negative syntax or negative structure test
directory. Each *.shex file in the directory becomes one proposed test
whose name is the file name without its extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runScaffold,
}

func init() {
	scaffoldCmd.Flags().StringVar(&scaffoldKind, "kind", string(projection.NegativeSyntax), "Test kind: NegativeSyntax or NegativeStructure")
	scaffoldCmd.Flags().StringVar(&scaffoldComment, "comment", "", "Manifest comment (default derived from --kind)")
	scaffoldCmd.Flags().BoolVar(&scaffoldForce, "force", false, "Overwrite an existing manifest.ttl")
	rootCmd.AddCommand(scaffoldCmd)
}

func runScaffold(cmd *cobra.Command, args []string) error {
	settings, err := config.Current()
	if err != nil {
		return err
	}
	result, err := scaffold.Generate(cmd.Context(), scaffold.Options{
		Dir:      args[0],
		Kind:     projection.Kind(scaffoldKind),
		Comment:  scaffoldComment,
		SuiteIRI: settings.SuiteIRI,
		Force:    scaffoldForce,
	})
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d tests)\n", result.Path, len(result.Tests))
	return nil
}
