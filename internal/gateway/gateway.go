package gateway

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Akachukwu893331/BMI-Calculator/internal/health"
)

// defaultPrompt is sent when the history holds no user turn.
const defaultPrompt = "Hello"

// Gateway shapes chat requests for a Provider and absorbs empty or malformed
// replies.
type Gateway struct {
	provider Provider
	limiter  *rate.Limiter
}

// New returns a Gateway calling p at most perMinute times a minute with the
// given burst. perMinute <= 0 disables the limit.
func New(p Provider, perMinute, burst int) *Gateway {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	if burst <= 0 {
		burst = 1
	}
	return &Gateway{provider: p, limiter: rate.NewLimiter(limit, burst)}
}

// Provider returns the name of the configured provider.
func (g *Gateway) Provider() string { return g.provider.Name() }

// PrepareHistory returns the turns sent to the provider: everything up to
// and including the last user turn, or the whole history followed by a
// "Hello" user turn when there is none. A blank final prompt is also
// replaced by "Hello".
func PrepareHistory(turns []Turn) ([]Turn, error) {
	if len(turns) == 0 {
		return nil, ErrEmptyHistory
	}
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role != RoleUser {
			continue
		}
		out := append([]Turn(nil), turns[:i+1]...)
		if strings.TrimSpace(out[i].Text) == "" {
			out[i].Text = defaultPrompt
		}
		return out, nil
	}
	out := append([]Turn(nil), turns...)
	return append(out, Turn{Role: RoleUser, Text: defaultPrompt}), nil
}

// Reply asks the provider for the next assistant turn. An empty or
// undecodable provider reply becomes FallbackReply; transport and provider
// failures are returned as *GatewayError.
func (g *Gateway) Reply(ctx context.Context, turns []Turn, snap *health.Snapshot) (string, error) {
	history, err := PrepareHistory(turns)
	if err != nil {
		return "", err
	}
	if !g.limiter.Allow() {
		return "", ErrRateLimited
	}

	text, err := g.provider.Generate(ctx, Preamble(snap), history)
	switch {
	case errors.Is(err, ErrMalformedResponse):
		log.Printf("[gateway] %s: %v", g.provider.Name(), err)
		return FallbackReply, nil
	case err != nil:
		return "", &GatewayError{Provider: g.provider.Name(), Err: err}
	}

	if strings.TrimSpace(text) == "" {
		log.Printf("[gateway] %s returned an empty reply", g.provider.Name())
		return FallbackReply, nil
	}
	return text, nil
}
