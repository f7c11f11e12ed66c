package agent

import "github.com/tailored-agentic-units/reasoner/core/protocol"

// Config describes a model endpoint and how to authenticate against it.
// API keys are never stored in the config; APIKeyEnv names the
// environment variable they are read from.
type Config struct {
	// Provider selects the client implementation: "openai",
	// "openai_compatible", or "anthropic".
	Provider string `json:"provider,omitempty"`
	// Model is the model name requests are issued against.
	Model string `json:"model,omitempty"`
	// BaseURL points the client at an alternate endpoint. Required for
	// openai_compatible servers, optional otherwise.
	BaseURL string `json:"base_url,omitempty"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `json:"api_key_env,omitempty"`
	// Temperature is the sampling temperature for every request.
	Temperature float64 `json:"temperature,omitempty"`
	// Logprobs requests token log probabilities where the provider
	// supports them.
	Logprobs bool `json:"logprobs,omitempty"`
	// MaxTokens bounds the length of each completion.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:    "openai",
		Model:       "gpt-4o",
		APIKeyEnv:   "OPENAI_API_KEY",
		Temperature: 0.2,
		MaxTokens:   4096,
	}
}

// Merge overlays non-zero fields from source onto the config.
func (c *Config) Merge(source *Config) {
	if source == nil {
		return
	}
	if source.Provider != "" {
		c.Provider = source.Provider
	}
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.APIKeyEnv != "" {
		c.APIKeyEnv = source.APIKeyEnv
	}
	if source.Temperature != 0 {
		c.Temperature = source.Temperature
	}
	if source.Logprobs {
		c.Logprobs = true
	}
	if source.MaxTokens != 0 {
		c.MaxTokens = source.MaxTokens
	}
}

// Sampling returns the per-request sampling parameters the config
// implies.
func (c *Config) Sampling() protocol.Sampling {
	return protocol.Sampling{
		Temperature: c.Temperature,
		Logprobs:    c.Logprobs,
	}
}
