package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tailored-agentic-units/reasoner/core/protocol"
	"github.com/tailored-agentic-units/reasoner/observability"
)

// budgetRatio is the safety factor applied to the configured context length:
// the retention budget leaves 10% of the window for the model's reply.
const budgetRatio = 0.9

// Memory is an in-memory Session that enforces a whitespace-token budget.
// Every append notifies the configured observer with the new message, then
// runs the retention pass; evictions are reported the same way. The session
// is assigned a unique UUIDv7 identifier.
type Memory struct {
	id       string
	budget   int
	observer observability.Observer

	mu       sync.RWMutex
	messages []protocol.Message
}

// Option configures a Memory at construction time.
type Option func(*Memory)

// WithObserver sets the observer notified on every append and eviction.
// The default is NoOpObserver.
func WithObserver(obs observability.Observer) Option {
	return func(m *Memory) {
		if obs != nil {
			m.observer = obs
		}
	}
}

// NewMemory creates a bounded in-memory session. A nil config or
// non-positive context length falls back to the default context length.
func NewMemory(cfg *Config, opts ...Option) *Memory {
	contextLength := defaultContextLength
	if cfg != nil && cfg.ContextLength > 0 {
		contextLength = cfg.ContextLength
	}

	m := &Memory{
		id:       uuid.Must(uuid.NewV7()).String(),
		budget:   int(float64(contextLength) * budgetRatio),
		observer: observability.NoOpObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) ID() string {
	return m.id
}

// Budget returns the retention budget in whitespace tokens.
func (m *Memory) Budget() int {
	return m.budget
}

// TokenCount returns the total whitespace-token count of the current history.
func (m *Memory) TokenCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalTokens()
}

// AddMessage appends a message, notifies the observer, and runs the
// retention pass. Events are emitted outside the lock; the observer field is
// fixed at construction so the read is safe.
func (m *Memory) AddMessage(msg protocol.Message) {
	m.mu.Lock()
	m.messages = append(m.messages, msg)

	events := []observability.Event{observability.NewEvent(
		EventMessage, observability.LevelVerbose, "session",
		map[string]any{
			"session_id": m.id,
			"role":       string(msg.Role),
			"content":    msg.Content,
			"tokens":     msg.TokenCount(),
		},
	)}

	if evicted, retained := m.retain(); evicted > 0 {
		events = append(events, observability.NewEvent(
			EventEvict, observability.LevelInfo, "session",
			map[string]any{
				"session_id": m.id,
				"evicted":    evicted,
				"tokens":     retained,
				"budget":     m.budget,
			},
		))
	}
	m.mu.Unlock()

	for _, e := range events {
		m.observer.OnEvent(context.Background(), e)
	}
}

// retain drops the oldest messages once the history exceeds the budget.
// The scan runs newest to oldest and keeps a message when its role is
// system OR it still fits the running budget; kept system messages consume
// budget too, so the remainder can go negative. The scan stops at the first
// non-system message that does not fit and everything older is discarded,
// system or not. A history of only protected messages may therefore exceed
// the budget; that violation is accepted, not corrected.
//
// Callers must hold the write lock. Returns the number of dropped messages
// and the retained token total.
func (m *Memory) retain() (evicted, retained int) {
	total := m.totalTokens()
	if total <= m.budget {
		return 0, total
	}

	remaining := m.budget
	cut := 0
	for i := len(m.messages) - 1; i >= 0; i-- {
		msg := m.messages[i]
		cost := msg.TokenCount()
		if msg.Role == protocol.RoleSystem || remaining-cost >= 0 {
			remaining -= cost
			continue
		}
		cut = i + 1
		break
	}
	if cut == 0 {
		return 0, total
	}

	kept := make([]protocol.Message, len(m.messages)-cut)
	copy(kept, m.messages[cut:])
	m.messages = kept
	return cut, m.budget - remaining
}

func (m *Memory) totalTokens() int {
	total := 0
	for _, msg := range m.messages {
		total += msg.TokenCount()
	}
	return total
}

func (m *Memory) Messages() []protocol.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	copied := make([]protocol.Message, len(m.messages))
	copy(copied, m.messages)
	return copied
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}
