// ABOUTME: MCP tool definitions and registration for the chambers server
// ABOUTME: Exposes registration, chambers, consultation, transcripts, library and audit as tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/chambers/internal/core"
	"github.com/harper/chambers/internal/logger"
)

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, svc *core.Services, log *logger.Logger) *Handlers {
	handlers := NewHandlers(svc, log)

	// 1. register_account - Create an account and its default chamber
	server.AddTool(mcp.Tool{
		Name:        "register_account",
		Description: "Register a new counsel account. Creates a default chamber. Returns created, duplicate or invalid.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"key":          stringProp("Account key (email address)"),
				"display_name": stringProp("Name shown for the account"),
				"secret":       stringProp("Account password"),
			},
			Required: []string{"key", "secret"},
		},
	}, handlers.RegisterAccount)

	// 2. sign_in - Verify credentials and start a session
	server.AddTool(mcp.Tool{
		Name:        "sign_in",
		Description: "Verify an account's credentials and start a session. Required before any chamber or transcript tool.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"key":    stringProp("Account key (email address)"),
				"secret": stringProp("Account password"),
			},
			Required: []string{"key", "secret"},
		},
	}, handlers.SignIn)

	// 3. list_chambers - List an account's chambers
	server.AddTool(mcp.Tool{
		Name:        "list_chambers",
		Description: "List the chambers of an account, newest first. Optionally filter by label.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"account_key": stringProp("Account key"),
				"find":        stringProp("Case-insensitive label filter"),
				"include_archived": map[string]interface{}{
					"type":        "boolean",
					"description": "Include archived chambers (default: false)",
					"default":     false,
				},
			},
			Required: []string{"account_key"},
		},
	}, handlers.ListChambers)

	// 4. open_chamber - Create a chamber
	server.AddTool(mcp.Tool{
		Name:        "open_chamber",
		Description: "Open a new chamber (conversation thread) for an account.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"account_key": stringProp("Account key"),
				"label":       stringProp("Chamber label, e.g. the matter name"),
			},
			Required: []string{"account_key", "label"},
		},
	}, handlers.OpenChamber)

	// 5. archive_chamber - Archive a chamber
	server.AddTool(mcp.Tool{
		Name:        "archive_chamber",
		Description: "Archive a chamber. Its transcript is kept.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"account_key": stringProp("Account key"),
				"chamber_id":  numberProp("Chamber id"),
			},
			Required: []string{"account_key", "chamber_id"},
		},
	}, handlers.ArchiveChamber)

	// 6. submit_message - One consultation turn
	server.AddTool(mcp.Tool{
		Name:        "submit_message",
		Description: "Submit a message to a chamber and get the advisor's reply. Repeating the last message is ignored.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"account_key": stringProp("Signed-in account key"),
				"chamber_id":  numberProp("Chamber id"),
				"message":     stringProp("Message text"),
			},
			Required: []string{"account_key", "chamber_id", "message"},
		},
	}, handlers.SubmitMessage)

	// 7. read_transcript - Read a chamber transcript
	server.AddTool(mcp.Tool{
		Name:        "read_transcript",
		Description: "Read a chamber transcript in order. Pass after_id to read only newer messages.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"account_key": stringProp("Account key"),
				"chamber_id":  numberProp("Chamber id"),
				"after_id":    numberProp("Only return messages with a greater id (default: 0)"),
			},
			Required: []string{"account_key", "chamber_id"},
		},
	}, handlers.ReadTranscript)

	// 8. sync_library - Index new PDFs
	server.AddTool(mcp.Tool{
		Name:        "sync_library",
		Description: "Index PDF files in the library directory that are not yet indexed.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.SyncLibrary)

	// 9. list_library - List indexed assets
	server.AddTool(mcp.Tool{
		Name:        "list_library",
		Description: "List the indexed reference library assets.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListLibrary)

	// 10. system_status - Admin stats and recent audit events
	server.AddTool(mcp.Tool{
		Name:        "system_status",
		Description: "Account count, total queries and the most recent audit events.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Number of audit events to return (default: 10)",
					"default":     10,
				},
			},
		},
	}, handlers.SystemStatus)

	return handlers
}
