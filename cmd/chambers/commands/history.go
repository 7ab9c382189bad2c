// ABOUTME: History command: print a chamber transcript in order
// ABOUTME: Supports reading only messages newer than a given id
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/chambers/internal/mailer"
	"github.com/harper/chambers/internal/models"
)

var (
	historyChamber string
	historySince   int64
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a chamber transcript",
		Long: `Show a chamber transcript in the order it was recorded.

Examples:
  chambers history --chamber "Land Dispute"
  chambers history --chamber 7 --since 120 --format json`,
		RunE: runHistory,
	}

	cmd.Flags().StringVar(&historyChamber, "chamber", "", "Chamber id or label (default: most recent)")
	cmd.Flags().Int64Var(&historySince, "since", 0, "Only messages with an id greater than this")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	key, _, err := a.signIn()
	if err != nil {
		return err
	}
	chamberID, label, err := a.resolveChamber(key, historyChamber)
	if err != nil {
		return err
	}

	msgs, err := a.svc.Ledger.ReadSince(chamberID, historySince)
	if err != nil {
		return describe(err)
	}

	out := cmd.OutOrStdout()
	if wantJSON() {
		if msgs == nil {
			msgs = []models.Message{}
		}
		return writeJSON(out, msgs)
	}
	if len(msgs) == 0 {
		if !quiet {
			fmt.Fprintf(out, "No messages in %s\n", label)
		}
		return nil
	}
	for _, m := range msgs {
		fmt.Fprintf(out, "#%d [%s] %s\n%s\n\n", m.ID, mailer.RoleTag(m.Role), formatTime(m.CreatedAt), m.Body)
	}
	return nil
}
