// File path: internal/conversation/session.go
package conversation

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Registry holds per-session conversation contexts. Sessions are
// independent; only the map itself is shared between requests.
type Registry struct {
	mu       sync.Mutex
	maxTurns int
	sessions map[string]*Context
}

func NewRegistry(maxTurns int) *Registry {
	return &Registry{
		maxTurns: maxTurns,
		sessions: make(map[string]*Context),
	}
}

// Acquire returns the context for id, creating it if absent. An empty id
// allocates a fresh session; the assigned id is returned alongside.
func (r *Registry) Acquire(id string) (string, *Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		trimmed = uuid.NewString()
	}
	ctx, ok := r.sessions[trimmed]
	if !ok {
		ctx = NewContext(r.maxTurns)
		r.sessions[trimmed] = ctx
	}
	return trimmed, ctx
}

// Reset clears the named session's history. Unknown ids are a no-op, which
// keeps the operation idempotent.
func (r *Registry) Reset(id string) {
	r.mu.Lock()
	ctx, ok := r.sessions[strings.TrimSpace(id)]
	r.mu.Unlock()
	if ok {
		ctx.Reset()
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
