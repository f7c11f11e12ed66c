package reasoner

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailored-agentic-units/reasoner/agent"
	"github.com/tailored-agentic-units/reasoner/session"
	"github.com/tailored-agentic-units/reasoner/tools"
)

const (
	defaultMaxParseRetries = 5
	defaultMaxExecRetries  = 3
)

// Config holds initialization parameters for all reasoner subsystems.
// Each subsystem section delegates to that subsystem's config-driven
// constructor.
type Config struct {
	Agent           agent.Config            `json:"agent"`
	Agents          map[string]agent.Config `json:"agents,omitempty"`
	Session         session.Config          `json:"session"`
	Python          tools.PythonConfig      `json:"python"`
	SystemPrompt    string                  `json:"system_prompt,omitempty"`
	MaxParseRetries int                     `json:"max_parse_retries,omitempty"`
	MaxExecRetries  int                     `json:"max_exec_retries,omitempty"`
	Observers       []string                `json:"observers,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all
// subsystems.
func DefaultConfig() Config {
	return Config{
		Agent:           agent.DefaultConfig(),
		Session:         session.DefaultConfig(),
		Python:          tools.DefaultPythonConfig(),
		SystemPrompt:    SystemPrompt,
		MaxParseRetries: defaultMaxParseRetries,
		MaxExecRetries:  defaultMaxExecRetries,
		Observers:       []string{"slog"},
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	if source == nil {
		return
	}

	c.Agent.Merge(&source.Agent)
	c.Session.Merge(&source.Session)
	c.Python.Merge(&source.Python)

	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
	if source.MaxParseRetries > 0 {
		c.MaxParseRetries = source.MaxParseRetries
	}
	if source.MaxExecRetries > 0 {
		c.MaxExecRetries = source.MaxExecRetries
	}

	if len(source.Agents) > 0 {
		c.Agents = source.Agents
	}
	if len(source.Observers) > 0 {
		c.Observers = source.Observers
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and
// returns the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
