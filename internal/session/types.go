package session

import "go-chi-calculator/internal/calculator"

// SessionResponse is returned by every session endpoint that has a state.
type SessionResponse struct {
	ID    string              `json:"id"`
	State calculator.Snapshot `json:"state"`
}

// KeysRequest is the JSON body for POST /sessions/{id}/keys. Key is a single
// key name; Keys is a whitespace-separated sequence ("7 + 3 ="). When both
// are set Key is applied first.
type KeysRequest struct {
	Key  string `json:"key,omitempty"`
	Keys string `json:"keys,omitempty"`
}

// StreamRequest is a client message on the session WebSocket.
type StreamRequest struct {
	Type string `json:"type,omitempty"` // "ping" or empty
	KeysRequest
}

// StreamMessage is a server message on the session WebSocket.
type StreamMessage struct {
	Type  string               `json:"type"` // "state", "error" or "pong"
	State *calculator.Snapshot `json:"state,omitempty"`
	Error string               `json:"error,omitempty"`
}
