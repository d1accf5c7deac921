package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/testutil"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, opts Options) (http.Handler, *Store) {
	t.Helper()
	observability.Logger = zap.NewNop()

	store := NewStore(opts)
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r, store
}

func createSession(t *testing.T, router http.Handler) SessionResponse {
	t.Helper()
	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/sessions", nil), router)
	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	var resp SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	return resp
}

func pressKeys(t *testing.T, router http.Handler, id string, body KeysRequest) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/sessions/"+id+"/keys", body)
	return testutil.ExecuteRequest(req, router)
}

func TestCreateReturnsClearedState(t *testing.T) {
	router, store := newTestRouter(t, Options{})

	resp := createSession(t, router)

	if resp.ID == "" {
		t.Fatal("expected session id")
	}
	if resp.State.Display != "0" || resp.State.History != "" || resp.State.AwaitingInput {
		t.Fatalf("expected cleared state, got %+v", resp.State)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 stored session, got %d", store.Len())
	}
}

func TestCreateFailsWhenFull(t *testing.T) {
	router, _ := newTestRouter(t, Options{MaxSessions: 1})
	createSession(t, router)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/sessions", nil), router)
	testutil.CheckResponseCode(t, http.StatusServiceUnavailable, w.Code)
}

func TestPressAppliesKeysInOrder(t *testing.T) {
	router, _ := newTestRouter(t, Options{})
	id := createSession(t, router).ID

	w := pressKeys(t, router, id, KeysRequest{Keys: "7 + 3"})
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	w = pressKeys(t, router, id, KeysRequest{Key: "×", Keys: "2 ="})
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if resp.State.Display != "20" {
		t.Fatalf("expected display %q, got %q", "20", resp.State.Display)
	}
	if want := "7 + 3 = 10 * 2 = 20"; resp.State.History != want {
		t.Fatalf("expected history %q, got %q", want, resp.State.History)
	}
}

func TestPressShowsPendingOperation(t *testing.T) {
	router, _ := newTestRouter(t, Options{})
	id := createSession(t, router).ID

	w := pressKeys(t, router, id, KeysRequest{Keys: "12.5 ÷"})
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if resp.State.Operand != "12.5" || resp.State.Operator != "/" || !resp.State.AwaitingInput {
		t.Fatalf("expected pending 12.5 /, got %+v", resp.State)
	}
}

func TestPressErrors(t *testing.T) {
	router, _ := newTestRouter(t, Options{})
	id := createSession(t, router).ID

	tests := []struct {
		name   string
		id     string
		body   KeysRequest
		status int
	}{
		{name: "unknown session", id: "missing", body: KeysRequest{Key: "1"}, status: http.StatusNotFound},
		{name: "no keys", id: id, body: KeysRequest{}, status: http.StatusBadRequest},
		{name: "unknown key", id: id, body: KeysRequest{Keys: "1 % 2"}, status: http.StatusBadRequest},
		{name: "unknown single key", id: id, body: KeysRequest{Key: "sqrt"}, status: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := pressKeys(t, router, tc.id, tc.body)
			testutil.CheckResponseCode(t, tc.status, w.Code)
		})
	}

	// Rejected requests leave the engine untouched.
	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil), router)
	var resp SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.State.Display != "0" {
		t.Fatalf("expected display %q, got %q", "0", resp.State.Display)
	}
}

func TestGetAndDelete(t *testing.T) {
	router, store := newTestRouter(t, Options{})
	id := createSession(t, router).ID

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil), router)
	testutil.CheckResponseCode(t, http.StatusNoContent, w.Code)
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d sessions", store.Len())
	}

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil), router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil), router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
}
