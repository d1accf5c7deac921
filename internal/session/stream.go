package session

import (
	"encoding/json"
	"net/http"
	"time"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	maxMessageSize = 4096
	writeWait      = 10 * time.Second
)

// Stream handles GET /sessions/{id}/ws. The server sends the current state on
// connect and one reply per client message. Reads and writes happen on this
// goroutine only, so the connection has a single writer.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	sess, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, trace.SpanFromContext(ctx), logger, calculator.ErrorCounter(), "session.stream", err.Error(), err, statusFor(err), w)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	logger.Info("session stream opened")

	initial := sess.Snapshot()
	if err := writeMessage(conn, StreamMessage{Type: "state", State: &initial}); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("session stream closed unexpectedly", zap.Error(err))
			}
			break
		}

		reply := h.handleStreamMessage(r, sess, data)
		if err := writeMessage(conn, reply); err != nil {
			logger.Warn("session stream write failed", zap.Error(err))
			break
		}
	}

	logger.Info("session stream closed")
}

func (h *Handler) handleStreamMessage(r *http.Request, sess *Session, data []byte) StreamMessage {
	var req StreamRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return StreamMessage{Type: "error", Error: "invalid message"}
	}
	if req.Type == "ping" {
		return StreamMessage{Type: "pong"}
	}

	keys, err := parseRequest(req.KeysRequest)
	if err != nil {
		calculator.ErrorCounter().Add(r.Context(), 1)
		return StreamMessage{Type: "error", Error: err.Error()}
	}

	state := sess.Press(keys...)
	calculator.RecordKeys(r.Context(), keys, state)
	return StreamMessage{Type: "state", State: &state}
}

func writeMessage(conn *websocket.Conn, msg StreamMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
