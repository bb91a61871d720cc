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

const geminiBaseURL = "https://generativelanguage.googleapis.com"

type geminiContent struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type gemini struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func newGemini(cfg Config, httpClient *http.Client) *gemini {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	return &gemini{apiKey: cfg.APIKey, model: cfg.Model, baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (g *gemini) Name() string { return ProviderGemini }

// toGemini maps turns onto Gemini contents. Gemini calls the assistant "model".
func toGemini(system string, turns []Turn) geminiRequest {
	req := geminiRequest{Contents: make([]geminiContent, 0, len(turns))}
	for _, w := range ToWire(turns) {
		req.Contents = append(req.Contents, geminiContent{Role: w.Role, Parts: w.Parts})
	}
	if system != "" {
		req.SystemInstruction = &geminiContent{Parts: []Part{{Text: system}}}
	}
	return req
}

func (g *gemini) Generate(ctx context.Context, system string, turns []Turn) (string, error) {
	body, err := json.Marshal(toGemini(system, turns))
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var result geminiResponse
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(result.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
