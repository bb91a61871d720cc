// Package gateway forwards chat history to a hosted generative-AI provider
// and returns its text reply.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Replies substituted for provider output the user should never see.
const (
	FallbackReply = "Sorry, I couldn't generate a response. Please try again."
	FallbackError = "An error occurred while getting the response. Please try again later."
)

var (
	// ErrEmptyHistory is returned when a chat request carries no turns.
	ErrEmptyHistory = errors.New("No history provided.")
	// ErrMalformedResponse marks a provider body that could not be decoded.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrRateLimited is returned when the provider call budget is spent.
	ErrRateLimited = errors.New("too many chat requests")
)

// GatewayError wraps a network or provider failure.
type GatewayError struct {
	Provider string
	Err      error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Provider turns a system preamble and an ordered history into one reply.
// Implementations own the translation from Turn into their wire format.
type Provider interface {
	Name() string
	Generate(ctx context.Context, system string, turns []Turn) (string, error)
}

// Provider names accepted by NewProvider.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var defaultModels = map[string]string{
	ProviderGemini:    "gemini-1.5-flash",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-haiku-latest",
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// DefaultModel returns the model used when Config.Model is empty.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// NewProvider builds the provider named by cfg.Provider.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: api key not set", cfg.Provider)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case ProviderGemini:
		return newGemini(cfg, httpClient), nil
	case ProviderOpenAI:
		return newOpenAI(cfg, httpClient), nil
	case ProviderAnthropic:
		return newAnthropic(cfg, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
