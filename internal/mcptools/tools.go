// Package mcptools exposes calculator sessions as MCP tools.
package mcptools

import (
	"context"
	"fmt"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/session"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names
const (
	ToolNewSession = "calculator_new_session"
	ToolPress      = "calculator_press"
	ToolState      = "calculator_state"
	ToolEndSession = "calculator_end_session"
)

// Tools serves every calculator tool over one session store.
type Tools struct {
	store *session.Store
}

func New(store *session.Store) *Tools {
	return &Tools{store: store}
}

// Register adds all tools to s.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(ToolNewSession,
		mcp.WithDescription("Start a calculator session with a cleared display. Returns the session id."),
	), t.NewSession)

	s.AddTool(mcp.NewTool(ToolPress,
		mcp.WithDescription("Press keypad keys on a calculator session. Operators apply strictly left to right."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Id returned by "+ToolNewSession)),
		mcp.WithString("keys", mcp.Required(), mcp.Description(`Keys separated by spaces or run together, e.g. "7 + 3 * 2 =" or "12.5/5=". Also: C (clear), DEL (delete last).`)),
	), t.Press)

	s.AddTool(mcp.NewTool(ToolState,
		mcp.WithDescription("Read the display and history of a calculator session"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Id returned by "+ToolNewSession)),
	), t.State)

	s.AddTool(mcp.NewTool(ToolEndSession,
		mcp.WithDescription("Discard a calculator session"),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Id returned by "+ToolNewSession)),
	), t.EndSession)
}

// NewSession handles calculator_new_session.
func (t *Tools) NewSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := t.store.Create(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create session: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("session_id: %s\n%s", sess.ID, formatState(sess.Snapshot()))), nil
}

// Press handles calculator_press.
func (t *Tools) Press(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := t.lookup(req)
	if errResult != nil {
		return errResult, nil
	}

	raw := mcp.ParseString(req, "keys", "")
	if raw == "" {
		return mcp.NewToolResultError("keys parameter is required"), nil
	}
	keys, err := calculator.ParseKeys(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid keys: %v", err)), nil
	}

	state := sess.Press(keys...)
	calculator.RecordKeys(ctx, keys, state)
	return mcp.NewToolResultText(formatState(state)), nil
}

// State handles calculator_state.
func (t *Tools) State(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := t.lookup(req)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(formatState(sess.Snapshot())), nil
}

// EndSession handles calculator_end_session.
func (t *Tools) EndSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := mcp.ParseString(req, "session_id", "")
	if id == "" {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}
	if err := t.store.Delete(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to end session %s: %v", id, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("session %s ended", id)), nil
}

func (t *Tools) lookup(req mcp.CallToolRequest) (*session.Session, *mcp.CallToolResult) {
	id := mcp.ParseString(req, "session_id", "")
	if id == "" {
		return nil, mcp.NewToolResultError("session_id parameter is required")
	}
	sess, err := t.store.Get(id)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Unknown session %s: %v", id, err))
	}
	return sess, nil
}

func formatState(s calculator.Snapshot) string {
	return fmt.Sprintf("display: %s\nhistory: %s", s.Display, s.History)
}
