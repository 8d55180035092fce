package apispec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a spec file and validates it. Both YAML and JSON files
// are accepted; JSON is a YAML subset so one decoder covers both.
func LoadFile(path string) (*Specification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec %s: %w", path, err)
	}
	sp, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("spec %s: %w", path, err)
	}
	return sp, nil
}

// Parse decodes raw YAML or JSON spec bytes into a validated Specification.
func Parse(data []byte) (*Specification, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse spec: %w", err)
	}
	return FromMap(m)
}
