// Package config holds the CLI application's configuration: provider
// credentials and the query-stage tuning knobs.
package config

import "os"

// Config is the root configuration structure.
type Config struct {
	Provider ProviderConfig `json:"provider"`
	Query    QueryConfig    `json:"query"`
}

// ProviderConfig selects the LLM backend.
type ProviderConfig struct {
	// APIKey authenticates against the provider. Empty means fall back
	// to the OPENAI_API_KEY environment variable.
	APIKey string `json:"apiKey,omitempty"`
	// APIBase overrides the endpoint, e.g. for a local gateway.
	APIBase string `json:"apiBase,omitempty"`
	Model   string `json:"model"`
}

// QueryConfig tunes the two model stages of a query.
type QueryConfig struct {
	IdentifyTemperature float64 `json:"identifyTemperature"`
	AnswerTemperature   float64 `json:"answerTemperature"`
	// WithExamples injects few-shot pairs into the identify prompts.
	WithExamples bool `json:"withExamples"`
}

// DefaultConfig returns the configuration used when no config file
// exists: a deterministic identify stage and a mildly creative answer
// stage.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{Model: "gpt-4o-mini"},
		Query: QueryConfig{
			IdentifyTemperature: 0,
			AnswerTemperature:   0.3,
		},
	}
}

// ResolveAPIKey returns the configured API key, falling back to the
// OPENAI_API_KEY environment variable.
func (c *Config) ResolveAPIKey() string {
	if c.Provider.APIKey != "" {
		return c.Provider.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}
