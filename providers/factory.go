package providers

import "github.com/hedgineer/aiapi/schema"

// Params are the raw values needed to construct an LLM provider.
// Extracted from config by the caller to avoid an import cycle.
type Params struct {
	APIKey       string
	APIBase      string
	DefaultModel string
}

// New creates the schema.LLMProvider for the given params. Every
// supported backend speaks the OpenAI-compatible chat completion
// protocol, so a single implementation covers them all; gateways are
// selected via APIBase.
func New(p Params) schema.LLMProvider {
	return NewOpenAIProvider(p.APIKey, p.APIBase, p.DefaultModel)
}
