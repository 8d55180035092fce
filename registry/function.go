// Package registry binds callable functions to their specifications and
// holds them in the insertion-ordered collection the prompt builder and
// orchestrator read from.
package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/hedgineer/aiapi/apispec"
)

// Func is the signature every registrable function must satisfy. Kwargs
// carries the argument mapping the model produced; keys must match the
// names declared in the function's spec.
type Func func(ctx context.Context, kwargs map[string]any) (any, error)

// Function binds a callable to its specification and caches the
// documentation block derived from it. Entries are immutable after
// construction.
type Function struct {
	name string
	fn   Func
	spec *apispec.Specification
	doc  string
}

// NewFunction builds an entry from a callable and its validated spec.
// The spec's declared name must equal the registered name; the mismatch
// check prevents drift between spec authoring and function definition.
func NewFunction(name string, fn Func, sp *apispec.Specification) (*Function, error) {
	if fn == nil {
		return nil, fmt.Errorf("register %q: function is nil", name)
	}
	if sp == nil {
		return nil, fmt.Errorf("register %q: spec is nil, use NewDocumentedFunction for the doc-string form", name)
	}
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	if sp.Name != name {
		return nil, fmt.Errorf("register %q: the name of the registered function and the spec (%q) do not match",
			name, sp.Name)
	}
	return &Function{name: name, fn: fn, spec: sp, doc: Documentation(sp)}, nil
}

// NewDocumentedFunction builds an entry whose documentation is the
// supplied free-text block verbatim, prefixed with the function name.
// This is the doc-string registration form; no worked examples exist,
// so such an entry contributes no few-shot prompt pairs.
func NewDocumentedFunction(name, doc string, fn Func) (*Function, error) {
	if fn == nil {
		return nil, fmt.Errorf("register %q: function is nil", name)
	}
	return &Function{
		name: name,
		fn:   fn,
		doc:  fmt.Sprintf("Name:\n%s\n\n%s", name, strings.TrimSpace(doc)),
	}, nil
}

// Name returns the name the entry is registered under.
func (f *Function) Name() string { return f.name }

// Spec returns the owned specification, or nil for the doc-string form.
func (f *Function) Spec() *apispec.Specification { return f.spec }

// Documentation returns the pre-rendered documentation block.
func (f *Function) Documentation() string { return f.doc }

// Call invokes the bound function with the given kwargs. Errors from the
// function propagate unmodified.
func (f *Function) Call(ctx context.Context, kwargs map[string]any) (any, error) {
	return f.fn(ctx, kwargs)
}

const docTemplate = `Name:
%s

Description:
%s

Args:
%s

Code Example:
%s

Results Example:
%s

Results Description:
%s

Example Query:
%s

Example Response:
%s`

// Documentation produces the fixed-order documentation block the model
// reads: name, description, args, code example, first example result,
// results description, first example query, first example response.
// sp must be validated.
func Documentation(sp *apispec.Specification) string {
	lines := make([]string, len(sp.Args))
	for i, a := range sp.Args {
		lines[i] = a.Render()
	}

	return fmt.Sprintf(docTemplate,
		strings.TrimSpace(sp.Name),
		strings.TrimSpace(sp.Description),
		strings.Join(lines, "\n"),
		strings.TrimSpace(sp.CodeExample),
		apispec.FormatValue(sp.ExampleResults[0]),
		strings.TrimSpace(sp.ResultsDescription),
		strings.TrimSpace(sp.ExampleQuery[0]),
		strings.TrimSpace(sp.ExampleResponse[0]),
	)
}
