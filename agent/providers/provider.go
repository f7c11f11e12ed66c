// Package providers implements the agent interface for the model API
// backends the driver can talk to.
package providers

import "github.com/google/uuid"

// Config carries the resolved settings a provider client is built from.
// APIKey holds the key itself, not an environment variable name.
type Config struct {
	Model     string
	BaseURL   string
	APIKey    string
	MaxTokens int
}

type base struct {
	id    string
	model string
}

func newBase(model string) base {
	return base{
		id:    uuid.Must(uuid.NewV7()).String(),
		model: model,
	}
}

// ID returns the unique identifier of this agent instance.
func (b *base) ID() string { return b.id }

// Model returns the model name requests are issued against.
func (b *base) Model() string { return b.model }
