package session

const defaultContextLength = 128000

// Config holds session initialization parameters.
type Config struct {
	// ContextLength is the nominal model context window in whitespace
	// tokens. The retention budget is 90% of this value.
	ContextLength int `json:"context_length,omitempty"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{ContextLength: defaultContextLength}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source == nil {
		return
	}
	if source.ContextLength > 0 {
		c.ContextLength = source.ContextLength
	}
}

// New creates a Session from configuration. Currently returns an in-memory
// bounded session.
func New(cfg *Config) (Session, error) {
	return NewMemory(cfg), nil
}
