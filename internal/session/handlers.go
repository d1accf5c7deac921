package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("session")

var errNoKeys = errors.New("no keys provided")

// Handler serves the session endpoints over one Store.
type Handler struct {
	store    *Store
	upgrader websocket.Upgrader
}

func NewHandler(store *Store) *Handler {
	return &Handler{
		store: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Keypad front ends are served from other origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Create handles POST /sessions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "session.create")
	defer span.End()

	sess, err := h.store.Create(ctx)
	if err != nil {
		observability.RecordError(ctx, span, logger, calculator.ErrorCounter(), "session.create", err.Error(), err, statusFor(err), w)
		return
	}

	span.SetAttributes(attribute.String("session.id", sess.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("session created",
		zap.String("session_id", sess.ID),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, SessionResponse{ID: sess.ID, State: sess.Snapshot()})
}

// Get handles GET /sessions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "session.get", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	sess, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, calculator.ErrorCounter(), "session.get", err.Error(), err, statusFor(err), w)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, SessionResponse{ID: sess.ID, State: sess.Snapshot()})
}

// Press handles POST /sessions/{id}/keys.
func (h *Handler) Press(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "session.press", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	sess, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, calculator.ErrorCounter(), "session.press", err.Error(), err, statusFor(err), w)
		return
	}

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, calculator.ErrorCounter(), "session.press", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	keys, err := parseRequest(req)
	if err != nil {
		observability.RecordError(ctx, span, logger, calculator.ErrorCounter(), "session.press", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	state := sess.Press(keys...)
	calculator.RecordKeys(ctx, keys, state)

	span.AddEvent("keys.applied", trace.WithAttributes(
		attribute.Int("keys", len(keys)),
		attribute.String("display", state.Display),
	))
	span.SetStatus(codes.Ok, "")

	logger.Debug("keys applied",
		zap.Int("keys", len(keys)),
		zap.String("display", state.Display),
		zap.String("history", state.History),
	)

	handlers.WriteJSON(w, http.StatusOK, SessionResponse{ID: sess.ID, State: state})
}

// Delete handles DELETE /sessions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "session.delete", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	if err := h.store.Delete(ctx, id); err != nil {
		observability.RecordError(ctx, span, logger, calculator.ErrorCounter(), "session.delete", err.Error(), err, statusFor(err), w)
		return
	}

	logger.Info("session deleted")
	w.WriteHeader(http.StatusNoContent)
}

// parseRequest turns a KeysRequest into keys, Key first.
func parseRequest(req KeysRequest) ([]calculator.Key, error) {
	var keys []calculator.Key
	if req.Key != "" {
		k, err := calculator.ParseKey(req.Key)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	more, err := calculator.ParseKeys(req.Keys)
	if err != nil {
		return nil, err
	}
	keys = append(keys, more...)

	if len(keys) == 0 {
		return nil, errNoKeys
	}
	return keys, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTooManySessions):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
