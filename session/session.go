// Package session manages bounded conversation history for the reasoning
// driver. The in-memory implementation enforces an approximate token budget
// by dropping the oldest non-system messages once the conversation outgrows
// its configured context length.
package session

import (
	"github.com/tailored-agentic-units/reasoner/core/protocol"
)

// Session holds an ordered sequence of conversation messages. Implementations
// must be safe for concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// AddMessage appends a message to the conversation history and applies
	// the retention policy.
	AddMessage(msg protocol.Message)
	// Messages returns a defensive copy of the conversation history, oldest
	// first.
	Messages() []protocol.Message
	// Clear resets the conversation history.
	Clear()
}
