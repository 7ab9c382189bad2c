// ABOUTME: Export command: dump accounts, chambers, transcripts and library
// ABOUTME: Writes YAML or Markdown to a file or stdout
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/chambers/internal/storage/sqlite"
)

var (
	exportOutput string
	exportAs     string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the store as YAML or Markdown",
		Long: `Export every account, chamber transcript and library entry.
Secret hashes are never exported.

Formats:
  yaml      Structured data (default)
  markdown  Readable transcripts

Examples:
  chambers export -o backup.yaml
  chambers export --as markdown -o transcripts.md
  chambers export | less`,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&exportAs, "as", "yaml", "Export format: yaml or markdown")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportAs)
	switch format {
	case "yaml", "yml", "markdown", "md":
	default:
		return fmt.Errorf("unknown export format %q: use yaml or markdown", exportAs)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if exportOutput != "" {
		if err := a.store.ExportToFile(exportOutput, format); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", exportOutput)
		}
		return nil
	}

	data, err := a.store.Export()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if format == "markdown" || format == "md" {
		return sqlite.WriteMarkdown(cmd.OutOrStdout(), data)
	}
	return sqlite.WriteYAML(cmd.OutOrStdout(), data)
}
