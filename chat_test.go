package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/Akachukwu893331/BMI-Calculator/internal/gateway"
	"github.com/Akachukwu893331/BMI-Calculator/internal/health"
)

// mockGemini is a fake generateContent endpoint whose reply can be swapped
// between requests. The last request body is kept for assertions.
type mockGemini struct {
	mu       sync.Mutex
	status   int
	body     interface{}
	lastBody []byte
}

func (m *mockGemini) set(status int, body interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status, m.body = status, body
}

func (m *mockGemini) last() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastBody
}

func (m *mockGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastBody, _ = io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(m.status)
	if s, ok := m.body.(string); ok {
		io.WriteString(w, s)
		return
	}
	json.NewEncoder(w).Encode(m.body)
}

// geminiReply wraps text in the generateContent response shape
// (candidates[0].content.parts[].text).
func geminiReply(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"role":  "model",
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
}

// setupChatTest creates a router whose gateway talks to a mock Gemini server.
func setupChatTest(t *testing.T, perMinute int) (*gin.Engine, *mockGemini) {
	t.Helper()
	mock := &mockGemini{status: http.StatusOK}
	srv := httptest.NewServer(mock)
	t.Cleanup(srv.Close)

	provider, err := gateway.NewProvider(gateway.Config{
		Provider: gateway.ProviderGemini,
		APIKey:   "test-key",
		BaseURL:  srv.URL,
	})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	gin.SetMode(gin.TestMode)
	h := &Handler{gateway: gateway.New(provider, perMinute, 5)}
	return setupRouter(h, nil), mock
}

func TestChat_Success(t *testing.T) {
	router, mock := setupChatTest(t, 0)
	mock.set(http.StatusOK, geminiReply("Try a 20 minute walk."))

	w := doRequest(router, "POST", "/api/chat", `{
		"history": [
			{"role":"model","parts":[{"text":"Hello! I'm your Health Assistant."}]},
			{"role":"user","parts":[{"text":"How do I lose weight?"}]}
		],
		"context": {"bmi":27.5,"bmi_category":"Overweight","height_cm":175,"weight_kg":84.2,"age":35,"gender":"female","units":"metric"}
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp gateway.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Text != "Try a 20 minute walk." {
		t.Errorf("unexpected reply %q", resp.Text)
	}

	sent := string(mock.last())
	if !strings.Contains(sent, "BMI: 27.5 (Overweight)") {
		t.Errorf("expected context in system instruction, got %s", sent)
	}
	if !strings.Contains(sent, "How do I lose weight?") {
		t.Errorf("expected user prompt in request, got %s", sent)
	}
}

func TestChat_EmptyHistory(t *testing.T) {
	router, _ := setupChatTest(t, 0)

	for _, body := range []string{`{"history":[]}`, `{}`} {
		w := doRequest(router, "POST", "/api/chat", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := errorBody(t, w); got != "No history provided." {
			t.Errorf("unexpected error %q", got)
		}
	}
}

func TestChat_InvalidRole(t *testing.T) {
	router, _ := setupChatTest(t, 0)

	w := doRequest(router, "POST", "/api/chat", `{"history":[{"role":"system","parts":[{"text":"x"}]}]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := errorBody(t, w); got != "invalid role" {
		t.Errorf("unexpected error %q", got)
	}
}

func TestChat_NoUserTurnSendsHello(t *testing.T) {
	router, mock := setupChatTest(t, 0)
	mock.set(http.StatusOK, geminiReply("Hi there!"))

	w := doRequest(router, "POST", "/api/chat", `{"history":[{"role":"assistant","parts":[{"text":"Welcome"}]}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(string(mock.last()), `{"role":"user","parts":[{"text":"Hello"}]}`) {
		t.Errorf("expected Hello prompt, got %s", mock.last())
	}
}

func TestChat_EmptyProviderReplyFallsBack(t *testing.T) {
	router, mock := setupChatTest(t, 0)

	for _, body := range []interface{}{
		map[string]interface{}{"candidates": []interface{}{}},
		geminiReply(""),
		"not json",
	} {
		mock.set(http.StatusOK, body)
		w := doRequest(router, "POST", "/api/chat", `{"history":[{"role":"user","parts":[{"text":"hi"}]}]}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp gateway.ChatResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Text != gateway.FallbackReply {
			t.Errorf("expected fallback reply, got %q", resp.Text)
		}
	}
}

func TestChat_ProviderError(t *testing.T) {
	router, mock := setupChatTest(t, 0)
	mock.set(http.StatusInternalServerError, map[string]string{"error": "boom"})

	w := doRequest(router, "POST", "/api/chat", `{"history":[{"role":"user","parts":[{"text":"hi"}]}]}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
	if got := errorBody(t, w); got != "ai request failed" {
		t.Errorf("unexpected error %q", got)
	}
}

func TestChat_RateLimited(t *testing.T) {
	router, mock := setupChatTest(t, 1)
	mock.set(http.StatusOK, geminiReply("ok"))

	body := `{"history":[{"role":"user","parts":[{"text":"hi"}]}]}`
	for i := 0; i < 5; i++ {
		if w := doRequest(router, "POST", "/api/chat", body); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	w := doRequest(router, "POST", "/api/chat", body)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestChat_NotConfigured(t *testing.T) {
	router := setupRouterTest()

	w := doRequest(router, "POST", "/api/chat", `{"history":[{"role":"user","parts":[{"text":"hi"}]}]}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestContextSnapshot(t *testing.T) {
	var logs bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&logs)
	defer log.SetOutput(orig)

	sent := &health.Snapshot{BMI: 22}
	stored := snapshotRow{Data: health.Snapshot{BMI: 27}}

	if got := contextSnapshot(sent, func() (snapshotRow, error) {
		t.Fatal("stored snapshot loaded although the client sent one")
		return snapshotRow{}, nil
	}); got != sent {
		t.Errorf("expected the client's snapshot")
	}

	got := contextSnapshot(nil, func() (snapshotRow, error) { return stored, nil })
	if got == nil || got.BMI != 27 {
		t.Errorf("expected stored snapshot, got %+v", got)
	}

	if got := contextSnapshot(nil, func() (snapshotRow, error) { return snapshotRow{}, pgx.ErrNoRows }); got != nil {
		t.Errorf("expected nil without a stored snapshot, got %+v", got)
	}
	if logs.Len() != 0 {
		t.Errorf("missing snapshot should not be logged, got %q", logs.String())
	}

	if got := contextSnapshot(nil, func() (snapshotRow, error) { return snapshotRow{}, errors.New("connection reset") }); got != nil {
		t.Errorf("expected nil on database error, got %+v", got)
	}
	if !strings.Contains(logs.String(), "[chat] failed to load latest snapshot: connection reset") {
		t.Errorf("expected database error to be logged, got %q", logs.String())
	}
}
