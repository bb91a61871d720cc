package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Akachukwu893331/BMI-Calculator/internal/health"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	History []WireTurn       `json:"history"`
	Context *health.Snapshot `json:"context,omitempty"`
}

// ChatResponse is the success body of POST /api/chat.
type ChatResponse struct {
	Text string `json:"text"`
}

// Client talks to the chat endpoint of a running server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Send posts the conversation and returns the assistant's reply. It never
// fails: errors are logged and replaced by FallbackError, and a reply with no
// text becomes FallbackReply.
func (c *Client) Send(ctx context.Context, turns []Turn, snap *health.Snapshot) string {
	text, err := c.send(ctx, turns, snap)
	if err != nil {
		log.Printf("[chat] %v", err)
		return FallbackError
	}
	if strings.TrimSpace(text) == "" {
		return FallbackReply
	}
	return text
}

func (c *Client) send(ctx context.Context, turns []Turn, snap *health.Snapshot) (string, error) {
	body, err := json.Marshal(ChatRequest{History: ToWire(turns), Context: snap})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	// An undecodable body counts as a reply with no text.
	var out ChatResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		log.Printf("[chat] decode response: %v", err)
		return "", nil
	}
	return out.Text, nil
}
