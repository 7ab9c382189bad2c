// ABOUTME: Root command and global flags for the chambers CLI
// ABOUTME: Wires every subcommand and validates mutually exclusive flags
package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

// Global flags shared by all commands
var (
	verbose      bool
	quiet        bool
	outputFormat string
	dbPath       string
	accountKey   string
	secret       string
)

const banner = `
 ██████ ██   ██  █████  ███    ███ ██████  ███████ ██████  ███████
██      ██   ██ ██   ██ ████  ████ ██   ██ ██      ██   ██ ██
██      ███████ ███████ ██ ████ ██ ██████  █████   ██████  ███████
██      ██   ██ ██   ██ ██  ██  ██ ██   ██ ██      ██   ██      ██
 ██████ ██   ██ ██   ██ ██      ██ ██████  ███████ ██   ██ ███████
`

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chambers",
		Short: "Legal consultation chambers with durable transcripts",
		Long: banner + `
Chambers keeps per-account consultation threads ("chambers") with an
append-only transcript, an indexed library of reference PDFs and an
audit trail, all in one local SQLite database.

Accounts are selected with --account (or CHAMBERS_ACCOUNT) and verified
with --secret (or CHAMBERS_SECRET).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return errors.New("--verbose and --quiet are mutually exclusive")
			}
			switch outputFormat {
			case "auto", "table", "json":
				return nil
			default:
				return errors.New("--format must be one of auto, table, json")
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging to stderr")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: $CHAMBERS_DB_PATH or XDG data dir)")
	cmd.PersistentFlags().StringVar(&accountKey, "account", "", "Account key (default: $CHAMBERS_ACCOUNT)")
	cmd.PersistentFlags().StringVar(&secret, "secret", "", "Account secret (default: $CHAMBERS_SECRET)")

	cmd.AddCommand(NewRegisterCmd())
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewChamberCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewLibraryCmd())
	cmd.AddCommand(NewBriefCmd())
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewAccountCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewBackupCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
