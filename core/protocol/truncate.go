package protocol

import (
	"math/rand/v2"
	"strings"
)

// TruncateMode selects which tokens survive when a message is cut down.
type TruncateMode string

const (
	// TruncateStart keeps the first N tokens.
	TruncateStart TruncateMode = "start"
	// TruncateEnd keeps the last N tokens.
	TruncateEnd TruncateMode = "end"
	// TruncateMix keeps the first N/2 and last N/2 tokens.
	TruncateMix TruncateMode = "mix"
	// TruncateRandom keeps a random N-token sample. Token order is not
	// preserved.
	TruncateRandom TruncateMode = "random"
)

// TokenCount returns the number of whitespace-delimited tokens in the
// message content. This is the budget unit used throughout: a crude proxy
// for context-window usage, not a subword tokenizer count.
func (m Message) TokenCount() int {
	return len(strings.Fields(m.Content))
}

// Truncate reduces the message content to at most maxTokens whitespace
// tokens using the given mode, appending a literal "..." when anything was
// cut. Content at or below the limit is left untouched. An empty or
// unrecognized mode behaves as TruncateStart. Returns the receiver for
// chaining.
func (m *Message) Truncate(maxTokens int, mode TruncateMode) *Message {
	tokens := strings.Fields(m.Content)
	if len(tokens) <= maxTokens {
		return m
	}
	if maxTokens < 0 {
		maxTokens = 0
	}

	var kept []string
	switch mode {
	case TruncateEnd:
		kept = tokens[len(tokens)-maxTokens:]
	case TruncateMix:
		head := maxTokens / 2
		tail := maxTokens - head
		kept = append(kept, tokens[:head]...)
		kept = append(kept, tokens[len(tokens)-tail:]...)
	case TruncateRandom:
		kept = make([]string, 0, maxTokens)
		for _, i := range rand.Perm(len(tokens))[:maxTokens] {
			kept = append(kept, tokens[i])
		}
	default:
		kept = tokens[:maxTokens]
	}

	m.Content = strings.Join(kept, " ") + "..."
	return m
}
