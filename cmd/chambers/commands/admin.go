// ABOUTME: Administrative commands: audit trail, system stats and account status
// ABOUTME: These act on the whole store rather than the signed-in account
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/chambers/internal/models"
)

var auditLimit int

// NewAuditCmd creates the audit command
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the most recent audit events",
		Long: `Show the most recent audit events, newest first.

Examples:
  chambers audit
  chambers audit --limit 50 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePositiveInt(auditLimit, "limit"); err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			events, err := a.svc.Audit.Recent(auditLimit)
			if err != nil {
				return describe(err)
			}
			if wantJSON() {
				if events == nil {
					events = []models.AuditEvent{}
				}
				return writeJSON(cmd.OutOrStdout(), events)
			}
			if len(events) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No audit events")
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "WHEN\tKIND\tACCOUNT\tDESCRIPTION\n")
			for _, e := range events {
				account := e.AccountKey
				if account == "" {
					account = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", formatTime(e.CreatedAt), e.Kind, account, truncate(e.Description, 60))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&auditLimit, "limit", 10, "Number of events to show")

	return cmd
}

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show account, query and library totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			accounts, queries, err := a.svc.Registry.Stats()
			if err != nil {
				return describe(err)
			}
			assets, err := a.store.Assets().Count()
			if err != nil {
				return describe(err)
			}

			if wantJSON() {
				return writeJSON(cmd.OutOrStdout(), map[string]int{
					"accounts": accounts,
					"queries":  queries,
					"assets":   assets,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Accounts: %d\n", accounts)
			fmt.Fprintf(out, "Queries:  %d\n", queries)
			fmt.Fprintf(out, "Library:  %d document(s)\n", assets)
			return nil
		},
	}
}

// NewAccountCmd creates the account command group
func NewAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Suspend or reinstate accounts",
		Long: `Suspend or reinstate accounts. Suspended accounts cannot sign in;
their chambers and transcripts are kept.

Examples:
  chambers account suspend ann@example.com
  chambers account reinstate ann@example.com`,
	}

	cmd.AddCommand(newAccountStatusCmd("suspend", "suspended", "Suspend an account", true))
	cmd.AddCommand(newAccountStatusCmd("reinstate", "reinstated", "Reinstate a suspended account", false))

	return cmd
}

func newAccountStatusCmd(use, done, short string, suspend bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <account>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			key := args[0]
			if suspend {
				err = a.svc.Registry.Suspend(key)
			} else {
				err = a.svc.Registry.Reinstate(key)
			}
			if err != nil {
				return fmt.Errorf("account %s: %w", key, describe(err))
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Account %s %s\n", key, done)
			}
			return nil
		},
	}
}
