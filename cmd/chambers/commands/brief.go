// ABOUTME: Brief command: email a chamber transcript as a consultation brief
// ABOUTME: --dry-run prints the composed brief instead of sending it
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/chambers/internal/mailer"
	"github.com/harper/chambers/internal/models"
)

var (
	briefChamber string
	briefTo      string
	briefDryRun  bool
)

// NewBriefCmd creates the brief command
func NewBriefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Email a chamber transcript as a brief",
		Long: `Compose a consultation brief from a chamber transcript and send it by
email. SMTP is configured with SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS
and SMTP_FROM.

Examples:
  chambers brief --chamber "Land Dispute" --to client@example.com
  chambers brief --chamber 7 --dry-run`,
		RunE: runBrief,
	}

	cmd.Flags().StringVar(&briefChamber, "chamber", "", "Chamber id or label (default: most recent)")
	cmd.Flags().StringVar(&briefTo, "to", "", "Recipient address (default: the account key)")
	cmd.Flags().BoolVar(&briefDryRun, "dry-run", false, "Print the brief instead of sending it")

	return cmd
}

func runBrief(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	key, _, err := a.signIn()
	if err != nil {
		return err
	}
	chamberID, label, err := a.resolveChamber(key, briefChamber)
	if err != nil {
		return err
	}

	msgs, err := a.svc.Ledger.ReadAll(chamberID)
	if err != nil {
		return describe(err)
	}
	if len(msgs) == 0 {
		return fmt.Errorf("chamber %q has no messages to brief", label)
	}

	brief := mailer.ComposeBrief(label, msgs, time.Now())
	out := cmd.OutOrStdout()
	if briefDryRun {
		fmt.Fprintf(out, "Subject: %s\n\n%s\n", brief.Subject, brief.Body)
		return nil
	}

	to := briefTo
	if to == "" {
		to = key
	}
	if !a.cfg.SMTPConfigured() {
		return errors.New("SMTP is not configured: set SMTP_USER and SMTP_PASS")
	}
	sender, err := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:       a.cfg.SMTPHost,
		Port:       a.cfg.SMTPPort,
		User:       a.cfg.SMTPUser,
		Pass:       a.cfg.SMTPPass,
		From:       a.cfg.SMTPFrom,
		MaxRetries: a.cfg.MaxRetries,
		RetryDelay: a.cfg.RetryDelay,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := sender.Send(ctx, to, brief); err != nil {
		a.svc.Audit.Record(key, models.EventError, fmt.Sprintf("brief for chamber %d failed: %v", chamberID, err))
		return fmt.Errorf("sending brief: %w", err)
	}
	a.svc.Audit.Record(key, models.EventBriefSent, fmt.Sprintf("chamber %d sent to %s", chamberID, to))

	if !quiet {
		fmt.Fprintf(out, "Brief sent to %s\n", to)
	}
	return nil
}
