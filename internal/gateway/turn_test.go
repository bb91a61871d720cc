package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akachukwu893331/BMI-Calculator/internal/health"
)

func TestFromWire(t *testing.T) {
	turns, err := FromWire([]WireTurn{
		{Role: "user", Parts: []Part{{Text: "a"}, {Text: "b"}}},
		{Role: "model", Parts: []Part{{Text: "c"}}},
		{Role: "assistant", Parts: nil},
	})
	require.NoError(t, err)
	assert.Equal(t, []Turn{
		{Role: RoleUser, Text: "a\nb"},
		{Role: RoleAssistant, Text: "c"},
		{Role: RoleAssistant, Text: ""},
	}, turns)

	_, err = FromWire([]WireTurn{{Role: "user"}, {Role: "system"}})
	assert.EqualError(t, err, `history[1]: invalid role "system"`)
}

func TestToWire(t *testing.T) {
	w := ToWire([]Turn{{Role: RoleUser, Text: "hi"}, {Role: RoleAssistant, Text: "yo"}})
	assert.Equal(t, []WireTurn{
		{Role: "user", Parts: []Part{{Text: "hi"}}},
		{Role: "model", Parts: []Part{{Text: "yo"}}},
	}, w)

	back, err := FromWire(w)
	require.NoError(t, err)
	assert.Equal(t, "yo", back[1].Text)
}

func TestConversation(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewConversation()
	c.now = func() time.Time { return now }

	first := c.Append(RoleAssistant, "welcome")
	assert.Equal(t, now, first.Timestamp)
	c.Append(RoleUser, "hi")
	require.Equal(t, 2, c.Len())

	turns := c.Turns()
	turns[0].Text = "changed"
	assert.Equal(t, "welcome", c.Turns()[0].Text, "Turns returns a copy")

	c.Reset()
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Turns())
}

func TestClient_Send(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"text":"Stay hydrated."}`)
	}))
	defer srv.Close()

	snap := &health.Snapshot{BMI: 22, Age: 30, Gender: health.Male}
	reply := NewClient(srv.URL+"/").Send(context.Background(), []Turn{{Role: RoleUser, Text: "tips"}}, snap)

	assert.Equal(t, "Stay hydrated.", reply)
	require.Len(t, got.History, 1)
	assert.Equal(t, "tips", got.History[0].Parts[0].Text)
	require.NotNil(t, got.Context)
	assert.Equal(t, 22.0, got.Context.BMI)
}

func TestClient_Fallbacks(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server error", http.StatusBadGateway, `{"error":"ai request failed"}`, FallbackError},
		{"bad request", http.StatusBadRequest, `{"error":"No history provided."}`, FallbackError},
		{"missing text", http.StatusOK, `{}`, FallbackReply},
		{"not json", http.StatusOK, `<html>`, FallbackReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			reply := NewClient(srv.URL).Send(context.Background(), []Turn{{Role: RoleUser, Text: "hi"}}, nil)
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	reply := NewClient(url).Send(context.Background(), []Turn{{Role: RoleUser, Text: "hi"}}, nil)
	assert.Equal(t, FallbackError, reply)
}
