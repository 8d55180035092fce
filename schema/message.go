// Package schema contains the core types shared across aiapi packages:
// the prompt message types, the LLM provider contract, and the wire
// structures exchanged with the model during a query.
package schema

// Role is the speaker tag on a prompt message.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged text block in a prompt sequence.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
