// ABOUTME: Chat command: consult the advisor inside a chamber
// ABOUTME: One session per invocation; repeating the previous line is ignored
package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/chambers/internal/core"
)

var chatChamber string

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message...]",
		Short: "Consult the advisor in a chamber",
		Long: `Consult the advisor in a chamber.

With a message argument, submits it and prints the reply. Without one,
reads messages line by line from stdin until EOF or "/quit". A line that
repeats the previous submission is ignored.

Examples:
  chambers chat --chamber "Land Dispute" "Is adverse possession available?"
  chambers chat --chamber 7`,
		RunE: runChat,
	}

	cmd.Flags().StringVar(&chatChamber, "chamber", "", "Chamber id or label (default: most recent)")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	key, _, err := a.signIn()
	if err != nil {
		return err
	}
	chamberID, label, err := a.resolveChamber(key, chatChamber)
	if err != nil {
		return err
	}

	session := core.NewSession(key)
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		return submit(cmd, a, session, chamberID, strings.Join(args, " "))
	}

	if !quiet {
		fmt.Fprintf(out, "Chamber: %s (type /quit to leave)\n", label)
	}
	return chatLoop(cmd, a, session, chamberID, cmd.InOrStdin())
}

func chatLoop(cmd *cobra.Command, a *app, session *core.Session, chamberID int64, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "/quit" {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := submit(cmd, a, session, chamberID, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func submit(cmd *cobra.Command, a *app, session *core.Session, chamberID int64, text string) error {
	ex, err := a.svc.Consultation.Submit(cmd.Context(), session, chamberID, text)
	if errors.Is(err, core.ErrEmptySubmission) {
		return nil
	}
	if err != nil {
		return describe(err)
	}
	if ex.Submission.Outcome != core.Accepted {
		return nil
	}

	if wantJSON() {
		return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
			"message_id":   ex.Submission.MessageID,
			"reply_id":     ex.ReplyID,
			"reply":        ex.Reply,
			"reply_failed": ex.Failed,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ex.Reply)
	return nil
}
