// Package apispec defines the structured specification a caller supplies
// when registering a function: its name, description, argument list, and
// the worked examples used to teach the model how to call it.
package apispec

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Specification describes one registrable function. The four example
// sequences are parallel: index i of each describes the same worked
// example. Construct via FromMap or LoadFile, or build the struct
// directly and call Validate before use.
type Specification struct {
	Name               string           `json:"name"                yaml:"name"`
	Description        string           `json:"description"         yaml:"description"`
	Args               []Arg            `json:"args"                yaml:"args"`
	CodeExample        string           `json:"code_example"        yaml:"code_example"`
	ResultsDescription string           `json:"results_description" yaml:"results_description"`
	ExampleResults     []any            `json:"example_results"     yaml:"example_results"`
	ExampleQuery       []string         `json:"example_query"       yaml:"example_query"`
	ExampleResponse    []string         `json:"example_response"    yaml:"example_response"`
	ExampleKwargs      []map[string]any `json:"example_kwargs"      yaml:"example_kwargs"`
}

// Examples returns the number of worked examples. Only meaningful on a
// validated spec, where all four example sequences have this length.
func (s *Specification) Examples() int { return len(s.ExampleQuery) }

// Arg is one entry of a specification's argument list. The spec format
// allows two shapes: a plain pre-formatted string, or a
// (name, type, description) triple. Exactly one form is populated.
type Arg struct {
	Text string // plain form, rendered verbatim

	Name        string
	Type        string
	Description string
}

// Plain reports whether the arg uses the plain-string form.
func (a Arg) Plain() bool { return a.Text != "" }

// Render formats the arg as one documentation line.
func (a Arg) Render() string {
	if a.Plain() {
		return strings.TrimSpace(a.Text)
	}
	return fmt.Sprintf("%s (%s): %s",
		strings.TrimSpace(a.Name), strings.TrimSpace(a.Type), strings.TrimSpace(a.Description))
}

// UnmarshalJSON accepts either a JSON string or a three-element array.
func (a *Arg) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*a = Arg{Text: text}
		return nil
	}
	var triple []string
	if err := json.Unmarshal(data, &triple); err != nil {
		return fmt.Errorf("arg must be a string or a [name, type, description] triple: %w", err)
	}
	return a.fromTriple(triple)
}

// MarshalJSON emits the form the arg was built from.
func (a Arg) MarshalJSON() ([]byte, error) {
	if a.Plain() {
		return json.Marshal(a.Text)
	}
	return json.Marshal([]string{a.Name, a.Type, a.Description})
}

// UnmarshalYAML accepts either a YAML scalar or a three-element sequence.
func (a *Arg) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var text string
		if err := node.Decode(&text); err != nil {
			return err
		}
		*a = Arg{Text: text}
		return nil
	case yaml.SequenceNode:
		var triple []string
		if err := node.Decode(&triple); err != nil {
			return fmt.Errorf("arg must be a string or a [name, type, description] triple: %w", err)
		}
		return a.fromTriple(triple)
	default:
		return fmt.Errorf("arg must be a string or a [name, type, description] triple, got yaml kind %d", node.Kind)
	}
}

func (a *Arg) fromTriple(triple []string) error {
	if len(triple) != 3 {
		return fmt.Errorf("%w: arg triple must have exactly 3 elements (name, type, description), got %d",
			ErrInvalidSpec, len(triple))
	}
	*a = Arg{Name: triple[0], Type: triple[1], Description: triple[2]}
	return nil
}

// FormatValue renders an example result (or any other loosely typed spec
// value) as model-readable text: strings are trimmed, everything else is
// serialised as indented JSON.
func FormatValue(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	return string(data)
}
