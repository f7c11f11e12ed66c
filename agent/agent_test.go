package agent_test

import (
	"errors"
	"testing"

	"github.com/tailored-agentic-units/reasoner/agent"
)

func TestNew_OpenAI(t *testing.T) {
	t.Setenv("REASONER_TEST_API_KEY", "test-key")

	a, err := agent.New(&agent.Config{
		Provider:  "openai",
		Model:     "gpt-4o",
		APIKeyEnv: "REASONER_TEST_API_KEY",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Model() != "gpt-4o" {
		t.Errorf("got model %q, want gpt-4o", a.Model())
	}
	if a.ID() == "" {
		t.Error("agent has empty ID")
	}
}

func TestNew_OpenAICompatible(t *testing.T) {
	t.Setenv("REASONER_TEST_API_KEY", "test-key")

	a, err := agent.New(&agent.Config{
		Provider:  "openai_compatible",
		Model:     "qwen3:8b",
		BaseURL:   "http://localhost:11434/v1",
		APIKeyEnv: "REASONER_TEST_API_KEY",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Model() != "qwen3:8b" {
		t.Errorf("got model %q, want qwen3:8b", a.Model())
	}
}

func TestNew_Anthropic(t *testing.T) {
	t.Setenv("REASONER_TEST_API_KEY", "test-key")

	a, err := agent.New(&agent.Config{
		Provider:  "anthropic",
		Model:     "claude-sonnet-4-5",
		APIKeyEnv: "REASONER_TEST_API_KEY",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Model() != "claude-sonnet-4-5" {
		t.Errorf("got model %q, want claude-sonnet-4-5", a.Model())
	}
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	a, err := agent.New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Model() != "gpt-4o" {
		t.Errorf("got model %q, want gpt-4o", a.Model())
	}
}

func TestNew_MissingAPIKey(t *testing.T) {
	t.Setenv("REASONER_TEST_API_KEY", "")

	_, err := agent.New(&agent.Config{
		Provider:  "openai",
		Model:     "gpt-4o",
		APIKeyEnv: "REASONER_TEST_API_KEY",
	})
	if !errors.Is(err, agent.ErrMissingAPIKey) {
		t.Errorf("got %v, want ErrMissingAPIKey", err)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	t.Setenv("REASONER_TEST_API_KEY", "test-key")

	_, err := agent.New(&agent.Config{
		Provider:  "petalflow",
		Model:     "some-model",
		APIKeyEnv: "REASONER_TEST_API_KEY",
	})
	if !errors.Is(err, agent.ErrUnknownProvider) {
		t.Errorf("got %v, want ErrUnknownProvider", err)
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	t.Setenv("REASONER_TEST_API_KEY", "test-key")

	cfg := &agent.Config{
		Provider:  "openai",
		Model:     "gpt-4o",
		APIKeyEnv: "REASONER_TEST_API_KEY",
	}

	a1, err := agent.New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	a2, err := agent.New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a1.ID() == a2.ID() {
		t.Errorf("two agents share ID %q", a1.ID())
	}
}
