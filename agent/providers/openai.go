package providers

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/tailored-agentic-units/reasoner/core/protocol"
)

// OpenAI issues chat completions against the OpenAI API or any server
// implementing the same protocol.
type OpenAI struct {
	base
	client    openai.Client
	maxTokens int
}

// NewOpenAI creates an OpenAI-backed agent. A BaseURL in cfg points the
// client at a compatible server; empty uses the official endpoint.
func NewOpenAI(cfg Config) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAI{
		base:      newBase(cfg.Model),
		client:    openai.NewClient(opts...),
		maxTokens: cfg.MaxTokens,
	}
}

// Chat sends the conversation to the model and returns the assistant's
// reply text.
func (p *OpenAI) Chat(ctx context.Context, messages []protocol.Message, sampling protocol.Sampling) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(p.model),
		Messages:    openaiMessages(messages),
		Temperature: openai.Float(sampling.Temperature),
	}
	if sampling.Logprobs {
		params.Logprobs = openai.Bool(true)
	}
	if p.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(p.maxTokens))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func openaiMessages(messages []protocol.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		if msg.Content == "" {
			continue
		}
		switch msg.Role {
		case protocol.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case protocol.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	if len(out) == 0 {
		out = append(out, openai.UserMessage("Continue."))
	}
	return out
}
