package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Provider.Model != def.Provider.Model {
		t.Errorf("expected default model %q, got %q", def.Provider.Model, cfg.Provider.Model)
	}
	if cfg.Query.AnswerTemperature != def.Query.AnswerTemperature {
		t.Errorf("expected default answer temperature %v, got %v",
			def.Query.AnswerTemperature, cfg.Query.AnswerTemperature)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"provider": map[string]any{
			"model":   "gpt-4o",
			"apiBase": "http://localhost:8080/v1",
		},
		"query": map[string]any{
			"identifyTemperature": 0.1,
			"answerTemperature":   0.5,
			"withExamples":        true,
		},
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider.Model != "gpt-4o" {
		t.Errorf("expected model %q, got %q", "gpt-4o", cfg.Provider.Model)
	}
	if cfg.Provider.APIBase != "http://localhost:8080/v1" {
		t.Errorf("unexpected apiBase %q", cfg.Provider.APIBase)
	}
	if !cfg.Query.WithExamples || cfg.Query.AnswerTemperature != 0.5 {
		t.Errorf("query config not applied: %+v", cfg.Query)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error for invalid JSON (falls back to default), got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Provider.Model != def.Provider.Model {
		t.Errorf("expected default model %q, got %q", def.Provider.Model, cfg.Provider.Model)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Provider.Model = "gpt-4o"

	if err := Save(&cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Provider.Model != "gpt-4o" {
		t.Errorf("round trip lost model: %+v", loaded.Provider)
	}
}

func TestResolveAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider.APIKey = "from-config"
	if got := cfg.ResolveAPIKey(); got != "from-config" {
		t.Errorf("expected configured key, got %q", got)
	}

	cfg.Provider.APIKey = ""
	t.Setenv("OPENAI_API_KEY", "from-env")
	if got := cfg.ResolveAPIKey(); got != "from-env" {
		t.Errorf("expected env key, got %q", got)
	}
}
