package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/tailored-agentic-units/reasoner/core/protocol"
)

// The messages API requires an explicit completion limit.
const defaultAnthropicMaxTokens = 4096

// Anthropic issues chat requests against the Anthropic messages API.
type Anthropic struct {
	base
	client    anthropic.Client
	maxTokens int
}

// NewAnthropic creates an Anthropic-backed agent.
func NewAnthropic(cfg Config) *Anthropic {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	return &Anthropic{
		base:      newBase(cfg.Model),
		client:    anthropic.NewClient(opts...),
		maxTokens: maxTokens,
	}
}

// Chat sends the conversation to the model and returns the assistant's
// reply text. The messages API has no log probability support, so that
// sampling flag is ignored.
func (p *Anthropic) Chat(ctx context.Context, messages []protocol.Message, sampling protocol.Sampling) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   int64(p.maxTokens),
		Messages:    anthropicMessages(messages),
		Temperature: anthropic.Float(sampling.Temperature),
	}
	if system := systemPrompt(messages); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("messages request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(tb.Text)
		}
	}
	return sb.String(), nil
}

// anthropicMessages maps the conversation to the messages API shape.
// System messages travel separately in the request's System field.
func anthropicMessages(messages []protocol.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == protocol.RoleSystem || msg.Content == "" {
			continue
		}
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == protocol.RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	if len(out) == 0 {
		out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock("Continue.")))
	}
	return out
}

func systemPrompt(messages []protocol.Message) string {
	parts := make([]string, 0, 1)
	for _, msg := range messages {
		if msg.Role == protocol.RoleSystem && msg.Content != "" {
			parts = append(parts, msg.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}
