// ABOUTME: Version command reporting the build and the database schema it writes
// ABOUTME: Build fields are stamped by the release tooling through SetVersion
package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/harper/chambers/internal/mcp"
	"github.com/harper/chambers/internal/storage/sqlite"
)

// VersionInfo is the build stamp of this binary
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

var versionInfo = VersionInfo{Version: "dev", Commit: "none", Date: "unknown"}

// SetVersion records the build stamp (called from main)
func SetVersion(version, commit, date string) {
	versionInfo = VersionInfo{Version: version, Commit: commit, Date: date}
}

// buildReport is what the version command prints
type buildReport struct {
	VersionInfo
	Schema    int    `json:"schema_version"`
	MCPServer string `json:"mcp_server"`
	Go        string `json:"go"`
}

func currentBuild() buildReport {
	return buildReport{
		VersionInfo: versionInfo,
		Schema:      sqlite.SchemaVersion,
		MCPServer:   mcp.ServerName,
		Go:          runtime.Version(),
	}
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build and schema information",
		Long: `Print the chambers build stamp together with the SQLite schema
version it creates and the name it advertises to MCP clients.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := currentBuild()
			if wantJSON() {
				return writeJSON(cmd.OutOrStdout(), b)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chambers %s (%s, built %s)\n", b.Version, b.Commit, b.Date)
			fmt.Fprintf(out, "schema v%d, MCP server %q, %s\n", b.Schema, b.MCPServer, b.Go)
			return nil
		},
	}
}
