// ABOUTME: MCP command starts the Model Context Protocol server
// ABOUTME: Serves chambers tools over stdio alongside metrics and library sync
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/chambers/internal/daemon"
)

var (
	mcpMetricsAddr string
	mcpNoSync      bool
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Chambers as an MCP (Model Context Protocol) server over stdio, so
LLM agents can register accounts, open chambers, consult the advisor and
read transcripts. While running it also serves Prometheus metrics and
re-indexes the library on the CHAMBERS_SYNC_SCHEDULE cron schedule.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  chambers mcp

  # Configure in the client's config file:
  # {
  #   "mcpServers": {
  #     "chambers": {
  #       "command": "chambers",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	cmd.Flags().StringVar(&mcpMetricsAddr, "metrics-addr", "", "Metrics listen address (default: $CHAMBERS_METRICS_ADDR or :9464)")
	cmd.Flags().BoolVar(&mcpNoSync, "no-sync", false, "Disable scheduled library sync")

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := mcpMetricsAddr
	if addr == "" {
		addr = a.cfg.MetricsAddr
	}
	schedule := a.cfg.SyncSchedule
	if mcpNoSync {
		schedule = ""
	}

	err = daemon.Run(ctx, daemon.Options{
		Services:     a.svc,
		Metrics:      a.m,
		Logger:       a.log,
		Version:      versionInfo.Version,
		MetricsAddr:  addr,
		SyncSchedule: schedule,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
	})
	if err != nil {
		a.log.Error("MCP server stopped", "error", err)
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}
