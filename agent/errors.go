package agent

import "errors"

var (
	// ErrAgentNotFound indicates the named agent is not registered.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrAgentExists indicates a registration conflict on an agent name.
	ErrAgentExists = errors.New("agent already registered")

	// ErrEmptyAgentName indicates a registry operation with an empty name.
	ErrEmptyAgentName = errors.New("agent name cannot be empty")

	// ErrUnknownProvider indicates a configuration naming a provider
	// no client implementation exists for.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrMissingAPIKey indicates the configured API key environment
	// variable is unset or empty.
	ErrMissingAPIKey = errors.New("missing API key")
)
