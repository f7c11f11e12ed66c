// Package agent provides chat-capable model endpoints behind a common
// interface, with a registry for managing named configurations.
package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/tailored-agentic-units/reasoner/agent/providers"
	"github.com/tailored-agentic-units/reasoner/core/protocol"
)

// Agent is a chat-capable model endpoint.
type Agent interface {
	// ID returns the unique identifier of this agent instance.
	ID() string

	// Model returns the model name requests are issued against.
	Model() string

	// Chat sends the conversation to the model and returns the
	// assistant's reply text.
	Chat(ctx context.Context, messages []protocol.Message, sampling protocol.Sampling) (string, error)
}

// New creates an Agent from a configuration, selecting the client
// implementation by provider name. The API key is read from the
// environment variable named in cfg.APIKeyEnv.
func New(cfg *Config) (Agent, error) {
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}

	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrMissingAPIKey, cfg.APIKeyEnv)
	}

	pcfg := providers.Config{
		Model:     cfg.Model,
		BaseURL:   cfg.BaseURL,
		APIKey:    key,
		MaxTokens: cfg.MaxTokens,
	}

	switch cfg.Provider {
	case "openai", "openai_compatible":
		return providers.NewOpenAI(pcfg), nil
	case "anthropic":
		return providers.NewAnthropic(pcfg), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
