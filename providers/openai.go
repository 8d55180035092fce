// Package providers implements the schema.LLMProvider boundary for
// OpenAI-compatible chat completion endpoints.
package providers

import (
	"context"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hedgineer/aiapi/schema"
)

// OpenAIProvider talks to any OpenAI-compatible chat completion endpoint.
type OpenAIProvider struct {
	client       *openai.Client
	defaultModel string
}

// NewOpenAIProvider constructs a provider. apiBase may be empty for the
// official endpoint, or point at any compatible gateway.
func NewOpenAIProvider(apiKey, apiBase, defaultModel string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		cfg.BaseURL = strings.TrimRight(apiBase, "/")
	}
	return &OpenAIProvider{
		client:       openai.NewClientWithConfig(cfg),
		defaultModel: defaultModel,
	}
}

func (p *OpenAIProvider) DefaultModel() string { return p.defaultModel }

// Chat implements schema.LLMProvider.
func (p *OpenAIProvider) Chat(ctx context.Context, messages schema.Messages, opts schema.ChatOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = p.defaultModel
	}

	// The SDK omits a zero temperature from the request body, which the
	// server treats as the default (1.0). The smallest representable
	// value keeps a requested temperature of 0 on the wire.
	temperature := float32(opts.Temperature)
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: temperature,
		Messages:    toWireMessages(messages),
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: response contains no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func toWireMessages(messages schema.Messages) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages.Messages))
	for i, m := range messages.Messages {
		out[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return out
}
