package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/interview"
)

// offlineModel fails every completion, which drives the orchestrator onto its
// deterministic fallback paths. Good enough for exercising the HTTP surface.
type offlineModel struct{}

func (offlineModel) Complete(context.Context, string, string, ai.ResponseFormat) (string, error) {
	return "", &ai.GatewayError{Op: "test", Err: errors.New("offline")}
}

func newTestHandler() *Handler {
	return NewHandler(NewStore(), interview.New(offlineModel{}, nil), nil)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "body: %s", rec.Body.String())
	}
	return rec, decoded
}

func TestSessionLifecycle(t *testing.T) {
	router := newTestHandler().Router()

	rec, body := doJSON(t, router, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := body["session_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, string(interview.PhaseGreeting), body["phase"])

	rec, body = doJSON(t, router, http.MethodGet, "/api/sessions/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, body["session_id"])

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, body = doJSON(t, router, http.MethodGet, "/api/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "not found")
}

func TestPostTurnAdvancesSession(t *testing.T) {
	router := newTestHandler().Router()

	_, created := doJSON(t, router, http.MethodPost, "/api/sessions", "")
	id := created["session_id"].(string)

	rec, body := doJSON(t, router, http.MethodPost, "/api/sessions/"+id+"/turns",
		`{"text": "hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body["reply"], "full name")

	display := body["display"].(map[string]any)
	assert.Equal(t, string(interview.PhaseCollectingData), display["phase"])

	rec, body = doJSON(t, router, http.MethodPost, "/api/sessions/"+id+"/turns",
		`{"text": "Jane Doe"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	display = body["display"].(map[string]any)
	fields := display["fields"].([]any)
	require.Len(t, fields, 1)
	field := fields[0].(map[string]any)
	assert.Equal(t, "full_name", field["name"])
	assert.Equal(t, "Jane Doe", field["value"])
}

func TestPostTurnUnknownSession(t *testing.T) {
	router := newTestHandler().Router()

	rec, body := doJSON(t, router, http.MethodPost, "/api/sessions/nope/turns",
		`{"text": "hello"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "not found")
}

func TestPostTurnRejectsBadInput(t *testing.T) {
	router := newTestHandler().Router()
	_, created := doJSON(t, router, http.MethodPost, "/api/sessions", "")
	id := created["session_id"].(string)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/sessions/"+id+"/turns", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := doJSON(t, router, http.MethodPost, "/api/sessions/"+id+"/turns", `{"text": "  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "text is required")
}

func TestDeleteUnknownSession(t *testing.T) {
	router := newTestHandler().Router()

	rec, _ := doJSON(t, router, http.MethodDelete, "/api/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreSerializesSessionAccess(t *testing.T) {
	store := NewStore()
	session := store.Create()

	count := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.WithSession(session.ID, func(s *interview.Session) {
				count++
				s.History = append(s.History, interview.Turn{Speaker: interview.SpeakerUser, Text: "x"})
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, count)
	assert.Len(t, session.History, 50)
}

func TestStoreUnknownID(t *testing.T) {
	store := NewStore()

	err := store.WithSession("missing", func(*interview.Session) {
		t.Error("fn must not run for an unknown session")
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// Reads of a session must share the turn lock: a GET concurrent with turn
// handling would otherwise race on the candidate map and history. Run with
// the race detector enabled.
func TestConcurrentTurnsAndReads(t *testing.T) {
	router := newTestHandler().Router()

	_, created := doJSON(t, router, http.MethodPost, "/api/sessions", "")
	id := created["session_id"].(string)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/turns",
				strings.NewReader(`{"text": "Jane Doe"}`))
			router.ServeHTTP(httptest.NewRecorder(), req)
		}()
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+id, nil)
			router.ServeHTTP(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()

	rec, _ := doJSON(t, router, http.MethodGet, "/api/sessions/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
