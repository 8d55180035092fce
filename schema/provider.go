package schema

import "context"

// ChatOptions configures a single LLM chat request.
type ChatOptions struct {
	Model       string
	Temperature float64
}

// LLMProvider is the interface every LLM backend must satisfy.
//
// Chat sends an ordered prompt sequence and returns the single generated
// text block. Transport concerns (timeouts, retries) belong to the
// implementation, not to callers.
type LLMProvider interface {
	Chat(ctx context.Context, messages Messages, opts ChatOptions) (string, error)
	DefaultModel() string
}

func NewChatOptions(model string, temperature float64) ChatOptions {
	return ChatOptions{Model: model, Temperature: temperature}
}
