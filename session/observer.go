package session

import "github.com/tailored-agentic-units/reasoner/observability"

// Session event types emitted on history mutation.
const (
	// EventMessage carries an appended message ("role", "content", "tokens").
	EventMessage observability.EventType = "session.message"
	// EventEvict reports a retention pass that dropped messages ("evicted",
	// "tokens", "budget").
	EventEvict observability.EventType = "session.evict"
)
