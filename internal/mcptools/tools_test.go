package mcptools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"go-chi-calculator/internal/session"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

// newSession starts a session and returns its id.
func newSession(t *testing.T, tools *Tools) string {
	t.Helper()
	result, err := tools.NewSession(context.Background(), newRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	first, _, _ := strings.Cut(resultText(t, result), "\n")
	id, ok := strings.CutPrefix(first, "session_id: ")
	require.True(t, ok, "unexpected first line %q", first)
	return id
}

func TestNewSessionReportsClearedState(t *testing.T) {
	tools := New(session.NewStore(session.Options{}))

	result, err := tools.NewSession(context.Background(), newRequest(nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "display: 0\nhistory: ")
}

func TestNewSessionFailsWhenStoreIsFull(t *testing.T) {
	tools := New(session.NewStore(session.Options{MaxSessions: 1}))
	newSession(t, tools)

	result, err := tools.NewSession(context.Background(), newRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "too many sessions")
}

func TestPressAndState(t *testing.T) {
	tools := New(session.NewStore(session.Options{}))
	id := newSession(t, tools)

	result, err := tools.Press(context.Background(), newRequest(map[string]interface{}{
		"session_id": id,
		"keys":       "7 + 3 * 2 =",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, "display: 20\nhistory: 7 + 3 = 10 * 2 = 20", resultText(t, result))

	result, err = tools.State(context.Background(), newRequest(map[string]interface{}{"session_id": id}))
	require.NoError(t, err)
	assert.Equal(t, "display: 20\nhistory: 7 + 3 = 10 * 2 = 20", resultText(t, result))
}

func TestPressErrors(t *testing.T) {
	tools := New(session.NewStore(session.Options{}))
	id := newSession(t, tools)

	tests := []struct {
		name      string
		arguments map[string]interface{}
		contains  string
	}{
		{name: "missing session id", arguments: map[string]interface{}{"keys": "1"}, contains: "session_id parameter is required"},
		{name: "unknown session", arguments: map[string]interface{}{"session_id": "nope", "keys": "1"}, contains: "Unknown session nope"},
		{name: "missing keys", arguments: map[string]interface{}{"session_id": id}, contains: "keys parameter is required"},
		{name: "bad key", arguments: map[string]interface{}{"session_id": id, "keys": "2 ^ 3"}, contains: "unknown key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tools.Press(context.Background(), newRequest(tt.arguments))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.contains)
		})
	}
}

func TestEndSession(t *testing.T) {
	store := session.NewStore(session.Options{})
	tools := New(store)
	id := newSession(t, tools)

	result, err := tools.EndSession(context.Background(), newRequest(map[string]interface{}{"session_id": id}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, 0, store.Len())

	result, err = tools.EndSession(context.Background(), newRequest(map[string]interface{}{"session_id": id}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = tools.State(context.Background(), newRequest(map[string]interface{}{"session_id": id}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestRegisterAddsAllTools(t *testing.T) {
	s := server.NewMCPServer("calculator-test", "0.0.0")
	New(session.NewStore(session.Options{})).Register(s)

	reply := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	body, err := json.Marshal(reply)
	require.NoError(t, err)

	for _, name := range []string{ToolNewSession, ToolPress, ToolState, ToolEndSession} {
		assert.Contains(t, string(body), `"name":"`+name+`"`)
	}
}
