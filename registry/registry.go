package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hedgineer/aiapi/apispec"
)

// ErrNotRegistered is wrapped by every failed lookup.
var ErrNotRegistered = errors.New("no such registered function")

// Registry maps lower-cased function names to their entries. It grows
// only via registration and preserves insertion order, which drives the
// ordering of documentation blocks in generated prompts. Registration is
// a setup-phase activity; the registry is read-only during queries, so
// no locking is needed.
type Registry struct {
	order   []string
	entries map[string]*Function
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Function)}
}

// Register validates sp, binds fn to it, and adds the entry under name.
func (r *Registry) Register(name string, fn Func, sp *apispec.Specification) error {
	f, err := NewFunction(name, fn, sp)
	if err != nil {
		return err
	}
	return r.Add(f)
}

// RegisterWithDoc adds fn documented by the free-text doc block instead
// of a structured spec.
func (r *Registry) RegisterWithDoc(name, doc string, fn Func) error {
	f, err := NewDocumentedFunction(name, doc, fn)
	if err != nil {
		return err
	}
	return r.Add(f)
}

// Add inserts a pre-built entry. Duplicate names are rejected.
func (r *Registry) Add(f *Function) error {
	key := strings.ToLower(f.Name())
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("register %q: already registered", f.Name())
	}
	r.entries[key] = f
	r.order = append(r.order, key)
	return nil
}

// Lookup returns the entry registered under name (case-insensitive).
func (r *Registry) Lookup(name string) (*Function, error) {
	f, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return f, nil
}

// Names returns the registered names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Functions returns the entries in insertion order.
func (r *Registry) Functions() []*Function {
	out := make([]*Function, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.entries[key])
	}
	return out
}

// Len returns the number of registered functions.
func (r *Registry) Len() int { return len(r.order) }
