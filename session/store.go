// Package session carries dialogue state between turns for callers that
// have no storage of their own. The core owns no persisted state; this is
// a process-local convenience with the same shape a real store would have.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mizuiro-dev/orderagent/schema"
)

// State is everything a caller must carry between two dialogue turns: the
// current draft plus the field the pending question targets.
type State struct {
	Draft    schema.OrderDraft `json:"draft"`
	Field    string            `json:"field,omitempty"`
	Question string            `json:"question,omitempty"`
}

// Store provides read/write access to dialogue state, routed by a session
// ID taken from the context.
type Store interface {
	Read(ctx context.Context) (*State, error)
	Write(ctx context.Context, state *State) error
	Remove(ctx context.Context) error
}

type sessionIDContext struct{}

const defaultSessionID = "default"

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// WithSessionID sets the routing key for state storage in the context.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDContext{}, id)
}

// SessionIDFromContext gets the routing key from the context.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(sessionIDContext{})
	if value == nil {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}

func sessionIDOrDefault(ctx context.Context) string {
	if id, ok := SessionIDFromContext(ctx); ok && id != "" {
		return id
	}
	return defaultSessionID
}

// MemoryStore is an in-memory Store for testing and local usage.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*State)}
}

func (m *MemoryStore) Read(ctx context.Context) (*State, error) {
	m.mu.RLock()
	state, ok := m.states[sessionIDOrDefault(ctx)]
	m.mu.RUnlock()
	if ok {
		return state, nil
	}
	return &State{}, nil
}

func (m *MemoryStore) Write(ctx context.Context, state *State) error {
	m.mu.Lock()
	m.states[sessionIDOrDefault(ctx)] = state
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Remove(ctx context.Context) error {
	m.mu.Lock()
	delete(m.states, sessionIDOrDefault(ctx))
	m.mu.Unlock()
	return nil
}
