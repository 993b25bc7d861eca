package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/revozen-chatbot/server/internal/agent/freequery"
	errx "github.com/revozen-chatbot/server/internal/core/error"
)

type stubAsk struct {
	message    string
	err        error
	gotSession string
	gotQuery   string
}

func (s *stubAsk) Ask(_ context.Context, question, sessionID string) (string, error) {
	s.gotQuery = question
	s.gotSession = sessionID
	return s.message, s.err
}

type stubChat struct {
	result *freequery.Result
	err    error
}

func (s *stubChat) Chat(context.Context, string) (*freequery.Result, error) {
	return s.result, s.err
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRootHealth(t *testing.T) {
	srv := New(&stubAsk{}, &stubChat{})

	rec := doJSON(t, srv.Router(), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Revozen Admin Chatbot API is running.", body["message"])
}

func TestAskEndpoint(t *testing.T) {
	ask := &stubAsk{message: "There are 2 types of tyre used for size 195/65R15 in the inventory."}
	srv := New(ask, &stubChat{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/ask", map[string]string{
		"question":   "How many types for 195/65R15?",
		"session_id": "sess-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "How many types for 195/65R15?", ask.gotQuery)
	assert.Equal(t, "sess-1", ask.gotSession)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ask.message, body["message"])
}

func TestAskEndpointOmittedSession(t *testing.T) {
	ask := &stubAsk{message: "ok"}
	srv := New(ask, &stubChat{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/ask", map[string]string{"question": "hi"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, ask.gotSession)
}

func TestAskEndpointBadBody(t *testing.T) {
	srv := New(&stubAsk{}, &stubChat{})

	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskEndpointFailureHidesDetail(t *testing.T) {
	ask := &stubAsk{err: errx.New(errors.New("connection refused"), http.StatusBadGateway, errx.MongoErrorMessage)}
	srv := New(ask, &stubChat{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/ask", map[string]string{"question": "anything"})
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errx.SystemErrorMessage, body["message"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestChatEndpoint(t *testing.T) {
	srv := New(&stubAsk{}, &stubChat{result: &freequery.Result{
		MongoQuery:       map[string]any{"brand": "MRF"},
		RawResult:        []bson.M{{"brand": "MRF", "model": "ZLX"}},
		FriendlyResponse: "One MRF tyre: the ZLX.",
	}})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/chat", map[string]string{"message": "what MRF tyres do we stock?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		MongoQuery       map[string]any   `json:"mongo_query"`
		RawResult        []map[string]any `json:"raw_result"`
		FriendlyResponse string           `json:"friendly_response"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"brand": "MRF"}, body.MongoQuery)
	require.Len(t, body.RawResult, 1)
	assert.Equal(t, "ZLX", body.RawResult[0]["model"])
	assert.Equal(t, "One MRF tyre: the ZLX.", body.FriendlyResponse)
}

func TestChatEndpointPipelineFailure(t *testing.T) {
	srv := New(&stubAsk{}, &stubChat{err: errx.New(nil, http.StatusUnprocessableEntity, "could not determine target collection for query")})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/chat", map[string]string{"message": "query the unicorns"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "could not determine target collection for query", body["error"])
}

func TestChatEndpointUnknownErrorIsOpaque(t *testing.T) {
	srv := New(&stubAsk{}, &stubChat{err: errors.New("panic: secret dsn")})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/chat", map[string]string{"message": "anything"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}
