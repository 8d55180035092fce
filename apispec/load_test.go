package apispec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSpec(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

const yamlSpec = `name: get_random_number
description: Returns a random number between low and high
args:
  - [low, int, The lowest possible number]
  - [high, int, The highest possible number]
code_example: |
  random_number = get_random_number(low, high)
results_description: A random integer between low and high inclusive.
example_results:
  - 42
example_query:
  - Give me a random number between 0 and 100
example_response:
  - Your random number is 42.
example_kwargs:
  - low: 0
    high: 100
`

func TestLoadFile_YAML(t *testing.T) {
	path := writeSpec(t, "spec.yaml", yamlSpec)

	sp, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sp.Name != "get_random_number" {
		t.Errorf("expected name %q, got %q", "get_random_number", sp.Name)
	}
	if len(sp.Args) != 2 || sp.Args[0].Plain() {
		t.Fatalf("expected 2 triple args, got %+v", sp.Args)
	}
	if got := sp.Args[1].Render(); got != "high (int): The highest possible number" {
		t.Errorf("unexpected arg rendering: %q", got)
	}
	if sp.ExampleKwargs[0]["low"] != 0 || sp.ExampleKwargs[0]["high"] != 100 {
		t.Errorf("unexpected example kwargs: %+v", sp.ExampleKwargs[0])
	}
}

const jsonSpec = `{
  "name": "get_random_number",
  "description": "Returns a random number between low and high",
  "args": ["low (int): The lowest possible number", "high (int): The highest possible number"],
  "code_example": "random_number = get_random_number(low, high)",
  "results_description": "A random integer between low and high inclusive.",
  "example_results": ["42"],
  "example_query": ["Give me a random number between 0 and 100"],
  "example_response": ["Your random number is 42."],
  "example_kwargs": [{"low": 0, "high": 100}]
}`

func TestLoadFile_JSON(t *testing.T) {
	path := writeSpec(t, "spec.json", jsonSpec)

	sp, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sp.Args) != 2 || !sp.Args[0].Plain() {
		t.Fatalf("expected 2 plain args, got %+v", sp.Args)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/spec.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFile_InvalidSpec(t *testing.T) {
	path := writeSpec(t, "spec.yaml", "name: broken\ndescription: no other fields\n")

	if _, err := LoadFile(path); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestParse_Unparseable(t *testing.T) {
	if _, err := Parse([]byte("{not valid yaml: [")); err == nil {
		t.Fatal("expected parse error")
	}
}
