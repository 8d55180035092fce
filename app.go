// Package aiapi is a function-calling façade over an LLM chat API.
//
// Callers register ordinary functions together with a structured
// specification (see apispec). ExecuteQuery then runs three stages for a
// natural-language query: the model identifies which registered
// functions answer it and with what arguments, the façade invokes them
// locally, and the model composes a final answer from the results.
package aiapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hedgineer/aiapi/apispec"
	"github.com/hedgineer/aiapi/prompt"
	"github.com/hedgineer/aiapi/registry"
	"github.com/hedgineer/aiapi/schema"
)

// ErrorPolicy decides what happens when an invoked function returns an
// error during ExecuteQuery.
type ErrorPolicy int

const (
	// AbortQuery fails the whole query on the first function error.
	AbortQuery ErrorPolicy = iota
	// SkipCall records the error as the call's result and continues, so
	// the answer stage can still work with the remaining results.
	SkipCall
)

// Options configures an App. The zero value is usable: the provider's
// default model, a deterministic identify stage and the default answer
// temperature.
type Options struct {
	// Model overrides the provider's default model.
	Model string
	// IdentifyTemperature is the sampling temperature of the identify
	// stage. Defaults to 0 for deterministic function selection.
	IdentifyTemperature float64
	// AnswerTemperature is the sampling temperature of the answer stage.
	// Zero means the default of 0.3.
	AnswerTemperature float64
	// WithExamples injects one few-shot pair per worked example into the
	// identify prompts.
	WithExamples bool
	// OnCallError selects the function-error policy for ExecuteQuery.
	OnCallError ErrorPolicy
}

const defaultAnswerTemperature = 0.3

// App is the façade's entry point. It owns a registry, a prompt builder
// and a cached identify-prompt sequence. Registration is a setup-phase
// activity; queries are strictly sequential, so App is not safe for
// concurrent use.
type App struct {
	provider schema.LLMProvider
	opts     Options

	registry *registry.Registry
	builder  *prompt.Builder

	// identifyPrompts caches the registry-derived prompt prefix between
	// queries. Invalidated on every registration.
	identifyPrompts *schema.Messages
}

// New creates an App backed by provider.
func New(provider schema.LLMProvider, opts Options) *App {
	if opts.Model == "" {
		opts.Model = provider.DefaultModel()
	}
	if opts.AnswerTemperature == 0 {
		opts.AnswerTemperature = defaultAnswerTemperature
	}
	r := registry.New()
	return &App{
		provider: provider,
		opts:     opts,
		registry: r,
		builder:  prompt.NewBuilder(r, opts.WithExamples),
	}
}

// Registry exposes the underlying registry for read access.
func (a *App) Registry() *registry.Registry { return a.registry }

// Register binds fn to a validated spec under name. The spec's declared
// name must match name.
func (a *App) Register(name string, fn registry.Func, sp *apispec.Specification) error {
	if err := a.registry.Register(name, fn, sp); err != nil {
		return err
	}
	a.identifyPrompts = nil
	return nil
}

// RegisterMap registers fn from a raw spec mapping, validating it first.
func (a *App) RegisterMap(name string, fn registry.Func, raw map[string]any) error {
	sp, err := apispec.FromMap(raw)
	if err != nil {
		return err
	}
	return a.Register(name, fn, sp)
}

// RegisterFile registers fn from a JSON or YAML spec file.
func (a *App) RegisterFile(name string, fn registry.Func, path string) error {
	sp, err := apispec.LoadFile(path)
	if err != nil {
		return err
	}
	return a.Register(name, fn, sp)
}

// RegisterWithDoc registers fn documented by a free-text block instead
// of a structured spec.
func (a *App) RegisterWithDoc(name, doc string, fn registry.Func) error {
	if err := a.registry.RegisterWithDoc(name, doc, fn); err != nil {
		return err
	}
	a.identifyPrompts = nil
	return nil
}

func (a *App) cachedIdentifyPrompts() schema.Messages {
	if a.identifyPrompts == nil {
		msgs := a.builder.IdentifyPrompts()
		a.identifyPrompts = &msgs
	}
	return *a.identifyPrompts
}

// IdentifyAPIs asks the model which registered functions answer query
// and with what arguments. The response must be the JSON plan shape; a
// response that does not parse fails the query, with the raw text logged
// for debugging.
func (a *App) IdentifyAPIs(ctx context.Context, query string) (schema.APIPlan, error) {
	msgs := a.cachedIdentifyPrompts().Append(schema.NewUserMessage(prompt.FormatQuery(query)))

	text, err := a.provider.Chat(ctx, msgs, schema.NewChatOptions(a.opts.Model, a.opts.IdentifyTemperature))
	if err != nil {
		return schema.APIPlan{}, fmt.Errorf("identify apis: %w", err)
	}

	var plan schema.APIPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		slog.Error("identify response is not valid JSON", "response", text)
		return schema.APIPlan{}, fmt.Errorf("parse identify response: %w", err)
	}
	return plan, nil
}

// InvokeCalls runs every call of a plan sequentially, in the order the
// model listed them. A name absent from the registry aborts regardless
// of policy; function errors follow Options.OnCallError.
func (a *App) InvokeCalls(ctx context.Context, plan schema.APIPlan) ([]schema.APIResult, error) {
	results := make([]schema.APIResult, 0, len(plan.APIs))
	for _, call := range plan.APIs {
		f, err := a.registry.Lookup(call.Name)
		if err != nil {
			return nil, err
		}

		result, err := f.Call(ctx, call.Kwargs)
		if err != nil {
			if a.opts.OnCallError == AbortQuery {
				return nil, fmt.Errorf("call %q: %w", call.Name, err)
			}
			slog.Warn("registered function failed, recording error as result",
				"function", call.Name, "error", err)
			result = map[string]any{"error": err.Error()}
		}

		results = append(results, schema.APIResult{Name: call.Name, Kwargs: call.Kwargs, Result: result})
	}
	return results, nil
}

// AnswerQuery asks the model to compose the final answer to query from
// the given call results. The model's text is returned unprocessed.
func (a *App) AnswerQuery(ctx context.Context, query string, results []schema.APIResult) (string, error) {
	msgs, err := a.builder.AnswerPrompts(distinctNames(results))
	if err != nil {
		return "", err
	}

	payload := schema.AnswerPayload{UserRequest: query, APIs: results}
	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal answer payload: %w", err)
	}
	msgs = msgs.Append(schema.NewUserMessage(string(data)))

	answer, err := a.provider.Chat(ctx, msgs, schema.NewChatOptions(a.opts.Model, a.opts.AnswerTemperature))
	if err != nil {
		return "", fmt.Errorf("answer query: %w", err)
	}
	return answer, nil
}

// ExecuteQuery runs the full identify → invoke → answer sequence and
// returns the final answer text. Any stage's error aborts the whole
// query; there is no partial-failure recovery.
func (a *App) ExecuteQuery(ctx context.Context, query string) (string, error) {
	plan, err := a.IdentifyAPIs(ctx, query)
	if err != nil {
		return "", err
	}

	results, err := a.InvokeCalls(ctx, plan)
	if err != nil {
		return "", err
	}

	return a.AnswerQuery(ctx, query, results)
}

// distinctNames returns the function names of results, deduplicated,
// in first-use order.
func distinctNames(results []schema.APIResult) []string {
	seen := make(map[string]bool, len(results))
	names := make([]string, 0, len(results))
	for _, r := range results {
		if !seen[r.Name] {
			seen[r.Name] = true
			names = append(names, r.Name)
		}
	}
	return names
}
