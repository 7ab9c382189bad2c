// ABOUTME: MCP tool handler implementations for the chambers server
// ABOUTME: Keeps one guard session per signed-in account and maps core errors to tool errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/chambers/internal/core"
	"github.com/harper/chambers/internal/logger"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	svc *core.Services
	log *logger.Logger

	mu       sync.Mutex
	sessions map[string]*core.Session // by account key
}

// NewHandlers creates handlers over svc
func NewHandlers(svc *core.Services, log *logger.Logger) *Handlers {
	return &Handlers{
		svc:      svc,
		log:      logger.OrNop(log).With("component", "mcp"),
		sessions: make(map[string]*core.Session),
	}
}

// RegisterAccount handles the register_account tool
func (h *Handlers) RegisterAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key argument is required and must be a string"), nil
	}
	secret, err := request.RequireString("secret")
	if err != nil {
		return mcp.NewToolResultError("secret argument is required and must be a string"), nil
	}

	outcome, err := h.svc.Registry.Register(key, request.GetString("display_name", ""), secret)
	if err != nil {
		return h.toolError("register", err), nil
	}
	return jsonResult(map[string]interface{}{
		"key":     strings.TrimSpace(key),
		"outcome": outcome.String(),
	})
}

// SignIn handles the sign_in tool
func (h *Handlers) SignIn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key argument is required and must be a string"), nil
	}
	secret, err := request.RequireString("secret")
	if err != nil {
		return mcp.NewToolResultError("secret argument is required and must be a string"), nil
	}

	name, ok, err := h.svc.Registry.Verify(key, secret)
	if err != nil {
		return h.toolError("sign in", err), nil
	}
	if !ok {
		return mcp.NewToolResultError("invalid credentials"), nil
	}

	session := h.session(strings.TrimSpace(key), true)
	return jsonResult(map[string]interface{}{
		"display_name": name,
		"session_id":   session.ID,
	})
}

// ListChambers handles the list_chambers tool
func (h *Handlers) ListChambers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountKey, err := request.RequireString("account_key")
	if err != nil {
		return mcp.NewToolResultError("account_key argument is required and must be a string"), nil
	}
	if h.session(accountKey, false) == nil {
		return notSignedIn(), nil
	}

	var chambers interface{}
	if find := request.GetString("find", ""); find != "" {
		chambers, err = h.svc.Chambers.Find(accountKey, find)
	} else {
		chambers, err = h.svc.Chambers.List(accountKey, request.GetBool("include_archived", false))
	}
	if err != nil {
		return h.toolError("list chambers", err), nil
	}
	return jsonResult(map[string]interface{}{"chambers": chambers})
}

// OpenChamber handles the open_chamber tool
func (h *Handlers) OpenChamber(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountKey, err := request.RequireString("account_key")
	if err != nil {
		return mcp.NewToolResultError("account_key argument is required and must be a string"), nil
	}
	if h.session(accountKey, false) == nil {
		return notSignedIn(), nil
	}
	label, err := request.RequireString("label")
	if err != nil {
		return mcp.NewToolResultError("label argument is required and must be a string"), nil
	}

	chamber, err := h.svc.Chambers.Create(accountKey, label)
	if err != nil {
		return h.toolError("open chamber", err), nil
	}
	return jsonResult(chamber)
}

// ArchiveChamber handles the archive_chamber tool
func (h *Handlers) ArchiveChamber(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountKey, err := request.RequireString("account_key")
	if err != nil {
		return mcp.NewToolResultError("account_key argument is required and must be a string"), nil
	}
	if h.session(accountKey, false) == nil {
		return notSignedIn(), nil
	}
	chamberID := int64(request.GetInt("chamber_id", 0))
	if chamberID <= 0 {
		return mcp.NewToolResultError("chamber_id argument is required and must be a positive number"), nil
	}

	if err := h.svc.Chambers.Archive(accountKey, chamberID); err != nil {
		return h.toolError("archive chamber", err), nil
	}
	return jsonResult(map[string]interface{}{"chamber_id": chamberID, "archived": true})
}

// SubmitMessage handles the submit_message tool
func (h *Handlers) SubmitMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountKey, err := request.RequireString("account_key")
	if err != nil {
		return mcp.NewToolResultError("account_key argument is required and must be a string"), nil
	}
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}
	chamberID := int64(request.GetInt("chamber_id", 0))
	if chamberID <= 0 {
		return mcp.NewToolResultError("chamber_id argument is required and must be a positive number"), nil
	}

	session := h.session(accountKey, false)
	if session == nil {
		return notSignedIn(), nil
	}
	if _, err := h.svc.Chambers.Owned(accountKey, chamberID); err != nil {
		return h.toolError("submit message", err), nil
	}

	ex, err := h.svc.Consultation.Submit(ctx, session, chamberID, message)
	if err != nil {
		return h.toolError("submit message", err), nil
	}

	response := map[string]interface{}{
		"outcome":    ex.Submission.Outcome.String(),
		"chamber_id": chamberID,
	}
	if ex.Submission.Outcome == core.Accepted {
		response["message_id"] = ex.Submission.MessageID
		response["reply"] = ex.Reply
		response["reply_id"] = ex.ReplyID
		response["reply_failed"] = ex.Failed
	}
	return jsonResult(response)
}

// ReadTranscript handles the read_transcript tool
func (h *Handlers) ReadTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountKey, err := request.RequireString("account_key")
	if err != nil {
		return mcp.NewToolResultError("account_key argument is required and must be a string"), nil
	}
	if h.session(accountKey, false) == nil {
		return notSignedIn(), nil
	}
	chamberID := int64(request.GetInt("chamber_id", 0))
	if chamberID <= 0 {
		return mcp.NewToolResultError("chamber_id argument is required and must be a positive number"), nil
	}

	chamber, err := h.svc.Chambers.Owned(accountKey, chamberID)
	if err != nil {
		return h.toolError("read transcript", err), nil
	}
	msgs, err := h.svc.Ledger.ReadSince(chamberID, int64(request.GetInt("after_id", 0)))
	if err != nil {
		return h.toolError("read transcript", err), nil
	}

	entries := make([]map[string]interface{}, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, map[string]interface{}{
			"id":         m.ID,
			"role":       m.Role,
			"body":       m.Body,
			"created_at": m.CreatedAt.Format(time.RFC3339),
		})
	}
	return jsonResult(map[string]interface{}{
		"chamber":  chamber.Label,
		"messages": entries,
	})
}

// SyncLibrary handles the sync_library tool
func (h *Handlers) SyncLibrary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := h.svc.Library.SyncDir()
	if err != nil {
		return h.toolError("sync library", err), nil
	}
	return jsonResult(map[string]interface{}{"indexed": n})
}

// ListLibrary handles the list_library tool
func (h *Handlers) ListLibrary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assets, err := h.svc.Library.List()
	if err != nil {
		return h.toolError("list library", err), nil
	}
	return jsonResult(map[string]interface{}{"assets": assets, "count": len(assets)})
}

// SystemStatus handles the system_status tool
func (h *Handlers) SystemStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accounts, queries, err := h.svc.Registry.Stats()
	if err != nil {
		return h.toolError("read stats", err), nil
	}
	events, err := h.svc.Audit.Recent(request.GetInt("limit", 10))
	if err != nil {
		return h.toolError("read audit log", err), nil
	}
	return jsonResult(map[string]interface{}{
		"accounts": accounts,
		"queries":  queries,
		"events":   events,
	})
}

func notSignedIn() *mcp.CallToolResult {
	return mcp.NewToolResultError("not signed in: call sign_in first")
}

// session returns the account's session, creating one when create is set.
// A fresh sign-in replaces the previous session.
func (h *Handlers) session(accountKey string, create bool) *core.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	if create {
		s := core.NewSession(accountKey)
		h.sessions[accountKey] = s
		return s
	}
	return h.sessions[accountKey]
}

// toolError turns a core error into a user-facing tool error
func (h *Handlers) toolError(op string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, core.ErrStoreUnavailable):
		h.log.Error("store unavailable", "op", op, "error", err)
		return mcp.NewToolResultError("store unavailable, try again")
	case errors.Is(err, core.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("%s: not found", op))
	case errors.Is(err, core.ErrEmptySubmission):
		return mcp.NewToolResultError("message cannot be empty")
	case errors.Is(err, core.ErrInvalid), errors.Is(err, core.ErrSuspended):
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", op, err))
	default:
		h.log.Error("tool failed", "op", op, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", op, err))
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
