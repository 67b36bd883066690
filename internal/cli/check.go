package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shexspec/mfgen/internal/manifest"
)

var checkFiles bool

var checkCmd = &cobra.Command{
	Use:   "check <manifest.jsonld>",
	Short: "Validate an emitted manifest",
	Long: `Validate a manifest.jsonld (or YAML) document against the output schema
and, with --files, check that every file it references exists relative to
the document's directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkFiles, "files", true, "Check that referenced files exist")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	result, err := manifest.ValidateFile(path)
	if err != nil {
		return err
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(errOut, "error: %s: %s (%s)\n", issue.Location(), issue.Message, issue.Keyword)
	}
	if !result.Valid {
		return fmt.Errorf("%s: %d schema issue%s", path, len(result.Issues), plural(len(result.Issues), "", "s"))
	}

	doc, err := manifest.ParseFile(path)
	if err != nil {
		return err
	}
	if checkFiles {
		missing := manifest.MissingFiles(doc, filepath.Dir(path))
		for _, m := range missing {
			fmt.Fprintf(errOut, "error: non-existent file: %s\n", m)
		}
		if len(missing) > 0 {
			return fmt.Errorf("%s: %d missing file%s", path, len(missing), plural(len(missing), "", "s"))
		}
	}

	fmt.Fprintf(out, "%s: %d entries OK\n", path, len(doc.Entries))
	return nil
}
