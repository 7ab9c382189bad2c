// ABOUTME: Chamber commands: list, open and archive conversation threads
// ABOUTME: All chamber commands act on the signed-in account
package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/chambers/internal/models"
)

var (
	chamberFind string
	chamberAll  bool
)

// NewChamberCmd creates the chamber command group
func NewChamberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chamber",
		Short: "Manage chambers",
		Long: `Manage the chambers (conversation threads) of an account.

Examples:
  chambers chamber list
  chambers chamber list --find dispute
  chambers chamber new "Land Dispute"
  chambers chamber archive 7`,
	}

	cmd.AddCommand(newChamberListCmd())
	cmd.AddCommand(newChamberNewCmd())
	cmd.AddCommand(newChamberArchiveCmd())

	return cmd
}

func newChamberListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chambers, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			key, _, err := a.signIn()
			if err != nil {
				return err
			}

			var chambers []models.Chamber
			if chamberFind != "" {
				chambers, err = a.svc.Chambers.Find(key, chamberFind)
			} else {
				chambers, err = a.svc.Chambers.List(key, chamberAll)
			}
			if err != nil {
				return describe(err)
			}

			if wantJSON() {
				if chambers == nil {
					chambers = []models.Chamber{}
				}
				return writeJSON(cmd.OutOrStdout(), chambers)
			}
			if len(chambers) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No chambers found")
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tLABEL\tKIND\tSTATUS\tCREATED\n")
			for _, c := range chambers {
				status := "open"
				if c.Archived {
					status = "archived"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, truncate(c.Label, 32), c.Kind, status, formatTime(c.CreatedAt))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&chamberFind, "find", "", "Only chambers whose label contains this text")
	cmd.Flags().BoolVar(&chamberAll, "all", false, "Include archived chambers")

	return cmd
}

func newChamberNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <label>",
		Short: "Open a new chamber",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			key, _, err := a.signIn()
			if err != nil {
				return err
			}

			c, err := a.svc.Chambers.Create(key, args[0])
			if err != nil {
				return describe(err)
			}
			if wantJSON() {
				return writeJSON(cmd.OutOrStdout(), c)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Chamber %d %q opened\n", c.ID, c.Label)
			}
			return nil
		},
	}
}

func newChamberArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a chamber (its transcript is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid chamber id %q", args[0])
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			key, _, err := a.signIn()
			if err != nil {
				return err
			}
			if err := a.svc.Chambers.Archive(key, id); err != nil {
				return fmt.Errorf("chamber %d: %w", id, describe(err))
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Chamber %d archived\n", id)
			}
			return nil
		},
	}
}
