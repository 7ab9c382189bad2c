// ABOUTME: Backup commands: push store snapshots to Charm and list them
// ABOUTME: Snapshots are full JSON exports keyed by time
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/harper/chambers/internal/backup"
	"github.com/harper/chambers/internal/storage/sqlite"
)

// NewBackupCmd creates the backup command group
func NewBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the store to Charm cloud",
		Long: `Snapshot the store to Charm cloud KV.

Charm authenticates with your SSH keys. CHARM_HOST selects the server and
CHAMBERS_CHARM_DB names the database.

Examples:
  chambers backup push
  chambers backup list
  chambers backup show 20261019T101500Z-1a2b3c4d`,
	}

	cmd.AddCommand(newBackupPushCmd())
	cmd.AddCommand(newBackupListCmd())
	cmd.AddCommand(newBackupShowCmd())
	cmd.AddCommand(newBackupStatusCmd())

	return cmd
}

func (a *app) openBackup() (*backup.Store, error) {
	store, err := backup.Open(backup.Config{
		Host:     a.cfg.CharmHost,
		DBName:   a.cfg.CharmDBName,
		AutoSync: a.cfg.AutoSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Charm: %w", err)
	}
	return store, nil
}

func newBackupPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Push a snapshot of the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := a.store.Export()
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			kv, err := a.openBackup()
			if err != nil {
				return err
			}
			defer func() { _ = kv.Close() }()

			snap, err := kv.Push(data)
			if err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}
			if wantJSON() {
				return writeJSON(cmd.OutOrStdout(), snap)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Snapshot %s pushed (%s)\n", snap.ID, humanize.Bytes(uint64(snap.Size)))
			}
			return nil
		},
	}
}

func newBackupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			kv, err := a.openBackup()
			if err != nil {
				return err
			}
			defer func() { _ = kv.Close() }()

			snaps, err := kv.List()
			if err != nil {
				return fmt.Errorf("listing snapshots: %w", err)
			}
			if wantJSON() {
				if snaps == nil {
					snaps = []backup.Snapshot{}
				}
				return writeJSON(cmd.OutOrStdout(), snaps)
			}
			if len(snaps) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No snapshots")
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tTAKEN\tSIZE\n")
			for _, s := range snaps {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, formatTime(s.TakenAt), humanize.Bytes(uint64(s.Size)))
			}
			return w.Flush()
		},
	}
}

func newBackupShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a snapshot as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			kv, err := a.openBackup()
			if err != nil {
				return err
			}
			defer func() { _ = kv.Close() }()

			data, err := kv.Fetch(args[0])
			if err != nil {
				return err
			}
			if wantJSON() {
				return writeJSON(cmd.OutOrStdout(), data)
			}
			return sqlite.WriteYAML(cmd.OutOrStdout(), data)
		},
	}
}

func newBackupStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the Charm identity used for backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			id, err := backup.CharmID()
			if err != nil {
				fmt.Fprintln(out, "Status: Not connected")
				fmt.Fprintf(out, "Host: %s\n", a.cfg.CharmHost)
				return nil
			}
			fmt.Fprintln(out, "Status: Connected")
			fmt.Fprintf(out, "User ID: %s\n", id)
			fmt.Fprintf(out, "Host: %s\n", a.cfg.CharmHost)
			fmt.Fprintf(out, "Database: %s\n", a.cfg.CharmDBName)
			return nil
		},
	}
}
