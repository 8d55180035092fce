package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hedgineer/aiapi/apispec"
)

func testSpec(name string) *apispec.Specification {
	return &apispec.Specification{
		Name:        name,
		Description: "Runs risk decomposition for an equities portfolio.",
		Args: []apispec.Arg{
			{Name: "portfolio", Type: "list", Description: "Ticker and quantity pairs"},
			{Name: "date", Type: "date", Description: "The date to run for"},
		},
		CodeExample:        "portfolio_risk = " + name + "(portfolio=portfolio, date=today)",
		ResultsDescription: "A dict mapping each factor to the dollar volatility.",
		ExampleResults:     []any{`{"Beta_Dollar_Vol": 950000}`},
		ExampleQuery:       []string{"What are my factor volatility exposures?"},
		ExampleResponse:    []string{"The largest factor exposure is Beta."},
		ExampleKwargs:      []map[string]any{{"portfolio": []any{}, "date": "2024-01-02"}},
	}
}

func noopFunc(context.Context, map[string]any) (any, error) { return "test", nil }

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := New()
	names := []string{"alpha", "beta", "gamma"}
	for _, name := range names {
		if err := r.Register(name, noopFunc, testSpec(name)); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	if r.Len() != len(names) {
		t.Fatalf("expected %d entries, got %d", len(names), r.Len())
	}
	for _, name := range names {
		f, err := r.Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if f.Name() != name {
			t.Errorf("expected entry name %q, got %q", name, f.Name())
		}
	}
}

func TestRegistry_InsertionOrder(t *testing.T) {
	r := New()
	names := []string{"zeta", "alpha", "mid"}
	for _, name := range names {
		if err := r.Register(name, noopFunc, testSpec(name)); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	got := r.Names()
	for i, name := range names {
		if got[i] != name {
			t.Fatalf("expected insertion order %v, got %v", names, got)
		}
	}
}

func TestRegistry_CaseInsensitiveLookup(t *testing.T) {
	r := New()
	if err := r.Register("Risk_Decomposition", noopFunc, testSpec("Risk_Decomposition")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := r.Lookup("risk_decomposition"); err != nil {
		t.Errorf("lower-case lookup failed: %v", err)
	}
	if _, err := r.Lookup("RISK_DECOMPOSITION"); err != nil {
		t.Errorf("upper-case lookup failed: %v", err)
	}
}

func TestRegistry_NameMismatch(t *testing.T) {
	r := New()
	err := r.Register("mismatched_name", noopFunc, testSpec("risk_decomposition"))
	if err == nil {
		t.Fatal("expected error for mismatched names")
	}
	if r.Len() != 0 {
		t.Errorf("entry was added despite mismatch")
	}
}

func TestRegistry_InvalidSpecRejected(t *testing.T) {
	r := New()
	sp := testSpec("f")
	sp.ExampleQuery = nil
	if err := r.Register("f", noopFunc, sp); !errors.Is(err, apispec.ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestRegistry_Duplicate(t *testing.T) {
	r := New()
	if err := r.Register("f", noopFunc, testSpec("f")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register("f", noopFunc, testSpec("f")); err == nil {
		t.Fatal("expected error for duplicate registration")
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := New()
	if _, err := r.Lookup("nonexistent_api"); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}

func TestFunction_Documentation(t *testing.T) {
	f, err := NewFunction("risk_decomposition", noopFunc, testSpec("risk_decomposition"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := f.Documentation()
	sections := []string{
		"Name:\nrisk_decomposition",
		"Description:\nRuns risk decomposition",
		"Args:\nportfolio (list): Ticker and quantity pairs\ndate (date): The date to run for",
		"Code Example:",
		"Results Example:\n{\"Beta_Dollar_Vol\": 950000}",
		"Results Description:",
		"Example Query:\nWhat are my factor volatility exposures?",
		"Example Response:\nThe largest factor exposure is Beta.",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(doc, section)
		if idx < 0 {
			t.Fatalf("documentation missing section %q:\n%s", section, doc)
		}
		if idx < last {
			t.Fatalf("section %q out of order:\n%s", section, doc)
		}
		last = idx
	}
}

func TestFunction_DocumentedForm(t *testing.T) {
	f, err := NewDocumentedFunction("get_random_number", "Returns a random number between low and high", noopFunc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Spec() != nil {
		t.Error("doc-form entry should have no spec")
	}
	doc := f.Documentation()
	if !strings.Contains(doc, "get_random_number") || !strings.Contains(doc, "Returns a random number") {
		t.Errorf("unexpected documentation: %q", doc)
	}
}

func TestFunction_Call(t *testing.T) {
	called := 0
	fn := func(_ context.Context, kwargs map[string]any) (any, error) {
		called++
		return kwargs["a"], nil
	}
	f, err := NewFunction("f", fn, testSpec("f"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.Call(context.Background(), map[string]any{"a": 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 || called != 1 {
		t.Errorf("expected result 7 from exactly one call, got %v (%d calls)", got, called)
	}
}
