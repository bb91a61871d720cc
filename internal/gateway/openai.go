package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const openAIBaseURL = "https://api.openai.com"

// openAIMessage is a single message in the OpenAI chat completions request.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAI struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func newOpenAI(cfg Config, httpClient *http.Client) *openAI {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	return &openAI{apiKey: cfg.APIKey, model: cfg.Model, baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (o *openAI) Name() string { return ProviderOpenAI }

// toOpenAI flattens the preamble and turns into plain-content messages.
func toOpenAI(system string, turns []Turn) []openAIMessage {
	msgs := make([]openAIMessage, 0, len(turns)+1)
	if system != "" {
		msgs = append(msgs, openAIMessage{Role: "system", Content: system})
	}
	for _, t := range turns {
		msgs = append(msgs, openAIMessage{Role: string(t.Role), Content: t.Text})
	}
	return msgs
}

// Generate sends a chat completions request and returns the content of the
// first choice. Uses raw net/http to avoid pulling in the OpenAI SDK.
func (o *openAI) Generate(ctx context.Context, system string, turns []Turn) (string, error) {
	bodyBytes, err := json.Marshal(openAIRequest{
		Model:       o.model,
		Messages:    toOpenAI(system, turns),
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}
