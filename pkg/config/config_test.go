package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apigen.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
spec: ./openapi.json
name: petstore
clients:
  - type: typescript
    outDir: ./sdk
    packageName: petstore
    name: Petstore
    includeTags: ["^pets$"]
    optimistic: true
    defaultBaseURL: https://api.example.com
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(cfg.Spec) {
		t.Errorf("spec path not absolutized: %q", cfg.Spec)
	}
	if len(cfg.Clients) != 1 {
		t.Fatalf("clients = %+v", cfg.Clients)
	}
	c := cfg.Clients[0]
	if !filepath.IsAbs(c.OutDir) {
		t.Errorf("outDir not absolutized: %q", c.OutDir)
	}
	if !c.Optimistic || c.DefaultBaseURL != "https://api.example.com" {
		t.Errorf("client = %+v", c)
	}
}

func TestLoadSpecURLKeptVerbatim(t *testing.T) {
	path := writeConfig(t, `
spec: https://example.com/openapi.json
clients:
  - type: typescript
    outDir: ./sdk
    packageName: p
    name: P
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Spec != "https://example.com/openapi.json" {
		t.Errorf("spec = %q", cfg.Spec)
	}
}

func TestLoadRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no spec", "clients:\n  - type: typescript\n    outDir: ./x\n    packageName: p\n    name: P\n"},
		{"no clients", "spec: ./openapi.json\n"},
		{"client missing type", "spec: ./openapi.json\nclients:\n  - outDir: ./x\n    packageName: p\n    name: P\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, test.content)); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
