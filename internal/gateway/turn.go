package gateway

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Role is the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is the internal representation of one chat message. Provider adapters
// translate it into whatever shape their API wants.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Part is a text fragment of a wire turn.
type Part struct {
	Text string `json:"text"`
}

// WireTurn is the `{role, parts:[{text}]}` shape used on the HTTP boundary.
// "model" and "assistant" are both accepted for the assistant role.
type WireTurn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// FromWire converts request history into turns. Parts of one turn are joined
// with a newline.
func FromWire(history []WireTurn) ([]Turn, error) {
	turns := make([]Turn, 0, len(history))
	for i, w := range history {
		var role Role
		switch w.Role {
		case "user":
			role = RoleUser
		case "model", "assistant":
			role = RoleAssistant
		default:
			return nil, fmt.Errorf("history[%d]: invalid role %q", i, w.Role)
		}
		texts := make([]string, 0, len(w.Parts))
		for _, p := range w.Parts {
			texts = append(texts, p.Text)
		}
		turns = append(turns, Turn{Role: role, Text: strings.Join(texts, "\n")})
	}
	return turns, nil
}

// ToWire converts turns into the provider-neutral wire history.
func ToWire(turns []Turn) []WireTurn {
	out := make([]WireTurn, 0, len(turns))
	for _, t := range turns {
		role := "user"
		if t.Role == RoleAssistant {
			role = "model"
		}
		out = append(out, WireTurn{Role: role, Parts: []Part{{Text: t.Text}}})
	}
	return out
}

// Conversation is an append-only list of turns owned by one chat session.
type Conversation struct {
	mu    sync.Mutex
	turns []Turn
	now   func() time.Time
}

// NewConversation returns an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{now: time.Now}
}

// Append records a turn stamped with the current time and returns it.
func (c *Conversation) Append(role Role, text string) Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	t := Turn{Role: role, Text: text, Timestamp: now()}
	c.turns = append(c.turns, t)
	return t
}

// Turns returns a copy of the turns in order.
func (c *Conversation) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Turn(nil), c.turns...)
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Reset drops every turn.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = nil
}
