// File path: internal/conversation/context.go
package conversation

import "sync"

// DefaultMaxTurns caps retained history at five exchanges.
const DefaultMaxTurns = 10

// Role is a closed tag for who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one utterance in a conversation. Sequence position is implicit in
// storage order.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Context is the bounded ordered log of one session's dialogue. When the
// cap is exceeded the oldest turns are evicted first, preserving recency.
// A session has a single writer; the internal lock only protects reads that
// race a concurrent session listing.
type Context struct {
	mu    sync.RWMutex
	max   int
	turns []Turn
}

func NewContext(maxTurns int) *Context {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Context{max: maxTurns}
}

// Append records a turn, evicting the oldest when the cap is exceeded.
func (c *Context) Append(turn Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, turn)
	if len(c.turns) > c.max {
		c.turns = c.turns[len(c.turns)-c.max:]
	}
}

// Recent returns the most recent n turns, oldest first within the window.
func (c *Context) Recent(n int) []Turn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if n <= 0 || len(c.turns) == 0 {
		return nil
	}
	start := len(c.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(c.turns)-start)
	copy(out, c.turns[start:])
	return out
}

// Len reports the number of retained turns.
func (c *Context) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.turns)
}

// Reset clears all turns. Idempotent.
func (c *Context) Reset() {
	c.mu.Lock()
	c.turns = nil
	c.mu.Unlock()
}
