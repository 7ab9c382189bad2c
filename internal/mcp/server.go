// ABOUTME: Builds the chambers MCP server and serves it over stdio
// ABOUTME: Serving stops cleanly when the context is cancelled
package mcp

import (
	"context"
	"errors"
	"io"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/chambers/internal/core"
	"github.com/harper/chambers/internal/logger"
)

// ServerName is the name advertised to MCP clients
const ServerName = "Chambers"

// NewServer creates an MCP server with every chambers tool registered
func NewServer(svc *core.Services, version string, log *logger.Logger) *mcpserver.MCPServer {
	server := mcpserver.NewMCPServer(ServerName, version)
	RegisterTools(server, svc, log)
	return server
}

// NewServerWithHandlers is NewServer for callers that also need the tool handlers
func NewServerWithHandlers(svc *core.Services, version string, log *logger.Logger) (*mcpserver.MCPServer, *Handlers) {
	server := mcpserver.NewMCPServer(ServerName, version)
	handlers := RegisterTools(server, svc, log)
	return server, handlers
}

// ServeStdio serves server on in/out until ctx is cancelled or in is closed
func ServeStdio(ctx context.Context, server *mcpserver.MCPServer, in io.Reader, out io.Writer) error {
	err := mcpserver.NewStdioServer(server).Listen(ctx, in, out)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
