package protocol

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation. Content is plain
// text; the tagged-span mini-format (<step>, <python>, <answer>) lives
// inside Content and is the extract package's concern.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a Message with the given role and content.
//
// Example:
//
//	msg := protocol.NewMessage(protocol.RoleUser, "Is 1253 a prime number?")
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// InitMessages creates a single-element message slice from a role and content
// string. Convenience wrapper for initializing a conversation from a prompt.
func InitMessages(role Role, content string) []Message {
	return []Message{NewMessage(role, content)}
}

// Sampling holds the model-call parameters that accompany the message
// sequence on every completion request.
type Sampling struct {
	Temperature float64 `json:"temperature"`
	Logprobs    bool    `json:"logprobs,omitempty"`
}
