package apispec

import (
	"errors"
	"fmt"
)

// ErrInvalidSpec is wrapped by every validation failure so callers can
// test for the class with errors.Is.
var ErrInvalidSpec = errors.New("invalid api spec")

// requiredKeys are the nine fields every raw spec mapping must carry.
var requiredKeys = []string{
	"name",
	"description",
	"args",
	"code_example",
	"results_description",
	"example_results",
	"example_query",
	"example_response",
	"example_kwargs",
}

var exampleKeys = []string{"example_results", "example_query", "example_response", "example_kwargs"}

// FromMap validates a raw spec mapping and builds a Specification from
// it. This runs once, at registration time; a mapping that passes here
// never fails later in the query path.
func FromMap(m map[string]any) (*Specification, error) {
	name, _ := m["name"].(string)
	if name == "" {
		return nil, fmt.Errorf("%w: missing the name in the api spec", ErrInvalidSpec)
	}
	for _, key := range requiredKeys {
		if _, ok := m[key]; !ok {
			return nil, fmt.Errorf("%w: missing the %q value for the api spec for %q", ErrInvalidSpec, key, name)
		}
	}

	rawArgs, ok := m["args"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: args must be a list for the %q api", ErrInvalidSpec, name)
	}
	args := make([]Arg, 0, len(rawArgs))
	for i, raw := range rawArgs {
		arg, err := argFromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("args[%d] for %q: %w", i, name, err)
		}
		args = append(args, arg)
	}
	if err := checkHomogeneous(args, name); err != nil {
		return nil, err
	}

	examples := make(map[string][]any, len(exampleKeys))
	for _, key := range exampleKeys {
		seq, ok := m[key].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a list for the %q api", ErrInvalidSpec, key, name)
		}
		examples[key] = seq
	}
	n := len(examples["example_results"])
	if n == 0 {
		return nil, fmt.Errorf("%w: there must be at least 1 set of example results, query, response and kwargs for %q",
			ErrInvalidSpec, name)
	}
	for _, key := range exampleKeys {
		if len(examples[key]) != n {
			return nil, fmt.Errorf("%w: example results, query, response and kwargs must all be the same length for %q",
				ErrInvalidSpec, name)
		}
	}

	kwargs := make([]map[string]any, 0, n)
	for i, raw := range examples["example_kwargs"] {
		kw, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: example_kwargs[%d] must be a mapping for %q", ErrInvalidSpec, i, name)
		}
		kwargs = append(kwargs, kw)
	}

	sp := &Specification{
		Name:               name,
		Description:        stringValue(m["description"]),
		Args:               args,
		CodeExample:        stringValue(m["code_example"]),
		ResultsDescription: stringValue(m["results_description"]),
		ExampleResults:     examples["example_results"],
		ExampleQuery:       stringSlice(examples["example_query"]),
		ExampleResponse:    stringSlice(examples["example_response"]),
		ExampleKwargs:      kwargs,
	}
	return sp, nil
}

// Validate checks a directly constructed Specification against the same
// invariants FromMap enforces on raw mappings.
func (s *Specification) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing the name in the api spec", ErrInvalidSpec)
	}
	n := len(s.ExampleResults)
	if n == 0 {
		return fmt.Errorf("%w: there must be at least 1 set of example results, query, response and kwargs for %q",
			ErrInvalidSpec, s.Name)
	}
	if len(s.ExampleQuery) != n || len(s.ExampleResponse) != n || len(s.ExampleKwargs) != n {
		return fmt.Errorf("%w: example results, query, response and kwargs must all be the same length for %q",
			ErrInvalidSpec, s.Name)
	}
	return checkHomogeneous(s.Args, s.Name)
}

// checkHomogeneous enforces a uniform-typed argument list: every arg in
// the plain-string form, or every arg in the triple form.
func checkHomogeneous(args []Arg, name string) error {
	if len(args) == 0 {
		return nil
	}
	plain := args[0].Plain()
	for i, a := range args {
		if a.Plain() != plain {
			return fmt.Errorf("%w: args for %q mix plain strings and (name, type, description) triples at index %d",
				ErrInvalidSpec, name, i)
		}
	}
	return nil
}

func argFromAny(raw any) (Arg, error) {
	switch v := raw.(type) {
	case string:
		return Arg{Text: v}, nil
	case []any:
		if len(v) != 3 {
			return Arg{}, fmt.Errorf("%w: arg triple must have exactly 3 elements (name, type, description), got %d",
				ErrInvalidSpec, len(v))
		}
		return Arg{Name: stringValue(v[0]), Type: stringValue(v[1]), Description: stringValue(v[2])}, nil
	default:
		return Arg{}, fmt.Errorf("%w: arg must be a string or a [name, type, description] triple, got %T",
			ErrInvalidSpec, raw)
	}
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return FormatValue(v)
}

func stringSlice(seq []any) []string {
	out := make([]string, len(seq))
	for i, v := range seq {
		out[i] = stringValue(v)
	}
	return out
}
