// ABOUTME: Library commands: index reference PDFs and list indexed documents
// ABOUTME: Files are indexed once by name; later edits are not re-read
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/chambers/internal/models"
)

// NewLibraryCmd creates the library command group
func NewLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the reference document library",
		Long: `Manage the reference document library.

PDF files placed in the library directory (CHAMBERS_LIBRARY_DIR, default
"law_library") are indexed with their size and page count.

Examples:
  chambers library sync
  chambers library list --format json`,
	}

	cmd.AddCommand(newLibrarySyncCmd())
	cmd.AddCommand(newLibraryListCmd())

	return cmd
}

func newLibrarySyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Index new PDFs from the library directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.svc.Library.SyncDir()
			if err != nil {
				return describe(err)
			}
			if wantJSON() {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"dir":     a.svc.Library.Dir(),
					"indexed": n,
				})
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d new document(s) from %s\n", n, a.svc.Library.Dir())
			}
			return nil
		},
	}
}

func newLibraryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List indexed documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			assets, err := a.svc.Library.List()
			if err != nil {
				return describe(err)
			}
			if wantJSON() {
				if assets == nil {
					assets = []models.Asset{}
				}
				return writeJSON(cmd.OutOrStdout(), assets)
			}
			if len(assets) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "Library is empty")
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "FILENAME\tSIZE\tPAGES\tINDEXED\n")
			for _, as := range assets {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", truncate(as.Filename, 48), formatSizeKB(as.SizeKB), as.Pages, formatTime(as.IndexedAt))
			}
			return w.Flush()
		},
	}
}
