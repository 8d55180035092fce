// Package prompt assembles the two prompt sequences the orchestrator
// sends to the model: the identify prompts that ask which registered
// functions answer a query, and the answer prompts that ask for a final
// response composed from the call results.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hedgineer/aiapi/registry"
	"github.com/hedgineer/aiapi/schema"
)

const identifySystemTemplate = `You are the first stage in a framework that helps users interact with generative AI.
Your job is to identify what APIs need to be called in order to help a second AI assistant answer a user request.
You only reply in JSON format, shaped exactly as {"apis": [{"name": ..., "kwargs": {...}}], "notes": "..."}.
You must identify what APIs need to be called AND what their arguments are.

There are %d APIs to choose from that are listed below:

%s

Documentation for each API are as follows:

%s`

const answerSystemTemplate = `You are the last stage in a framework that helps users interact with generative AI.
Before you received each user request, another AI identified which APIs needed to be called to answer it and attached the call results to the request.
The user request is listed below along with the results of the API calls.

Your job is to:
1. Understand the user query
2. Understand the API calls that were made and why
3. Answer with the best response to the user query by using the API results as though you are a research assistant, without naming the APIs in your answer

Below is the documentation for the %d APIs that were used:

%s`

// FormatQuery wraps a raw user query in the identify-stage instruction.
func FormatQuery(query string) string {
	return fmt.Sprintf("Identify what APIs need to be called in this query: %q", query)
}

// Builder derives prompt sequences from registry state. Both build
// methods are pure: they read the registry and allocate fresh messages,
// so repeated calls with an unchanged registry produce identical output.
type Builder struct {
	registry     *registry.Registry
	withExamples bool
}

// NewBuilder creates a Builder. When withExamples is set, the identify
// prompts carry one few-shot user/assistant pair per worked example of
// every registered function.
func NewBuilder(r *registry.Registry, withExamples bool) *Builder {
	return &Builder{registry: r, withExamples: withExamples}
}

// IdentifyPrompts builds the identify-stage sequence: one system block
// listing and documenting every registered function, optionally followed
// by few-shot example pairs, in registry insertion order.
func (b *Builder) IdentifyPrompts() schema.Messages {
	funcs := b.registry.Functions()

	docs := make([]string, len(funcs))
	for i, f := range funcs {
		docs[i] = f.Documentation()
	}

	msgs := schema.NewMessages()
	msgs.AddSystem(fmt.Sprintf(identifySystemTemplate,
		len(funcs),
		strings.Join(b.registry.Names(), "\n"),
		strings.Join(docs, "\n"),
	))

	if b.withExamples {
		for _, f := range funcs {
			sp := f.Spec()
			if sp == nil {
				continue
			}
			for i := 0; i < sp.Examples(); i++ {
				plan := schema.APIPlan{APIs: []schema.APICall{{Name: sp.Name, Kwargs: sp.ExampleKwargs[i]}}}
				data, _ := json.Marshal(plan)
				msgs.AddUser(FormatQuery(sp.ExampleQuery[i]))
				msgs.AddAssistant(string(data))
			}
		}
	}

	return msgs
}

// AnswerPrompts builds the answer-stage sequence for exactly the named
// functions: one system block with their documentation, followed by a
// one-shot user/assistant pair per worked example. A name absent from
// the registry fails the whole build.
func (b *Builder) AnswerPrompts(names []string) (schema.Messages, error) {
	used := make([]*registry.Function, 0, len(names))
	for _, name := range names {
		f, err := b.registry.Lookup(name)
		if err != nil {
			return schema.Messages{}, err
		}
		used = append(used, f)
	}

	docs := make([]string, len(used))
	for i, f := range used {
		docs[i] = f.Documentation()
	}

	msgs := schema.NewMessages()
	msgs.AddSystem(fmt.Sprintf(answerSystemTemplate, len(used), strings.Join(docs, "\n")))

	for _, f := range used {
		sp := f.Spec()
		if sp == nil {
			continue
		}
		for i := 0; i < sp.Examples(); i++ {
			payload := schema.AnswerPayload{
				UserRequest: sp.ExampleQuery[i],
				APIs: []schema.APIResult{{
					Name:   sp.Name,
					Kwargs: sp.ExampleKwargs[i],
					Result: sp.ExampleResults[i],
				}},
			}
			data, _ := json.MarshalIndent(payload, "", "    ")
			msgs.AddUser(string(data))
			msgs.AddAssistant(sp.ExampleResponse[i])
		}
	}

	return msgs, nil
}
