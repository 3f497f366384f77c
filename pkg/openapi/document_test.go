package openapi

import (
	"errors"
	"testing"
)

func testDocument() *Document {
	return NewDocument(map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"User": map[string]any{
					"type": "object",
				},
				"Foo/Bar": map[string]any{
					"type": "string",
				},
				"Has~Tilde": map[string]any{
					"type": "integer",
				},
			},
		},
		"servers": []any{
			map[string]any{"url": "https://api.example.com"},
		},
	})
}

func TestResolve(t *testing.T) {
	doc := testDocument()

	tests := []struct {
		name string
		ref  string
	}{
		{"plain", "#/components/schemas/User"},
		{"slash escape", "#/components/schemas/Foo~1Bar"},
		{"tilde escape", "#/components/schemas/Has~0Tilde"},
		{"percent encoded", "#/components/schemas/Foo%7E1Bar"},
		{"array index", "#/servers/0"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			node, err := doc.Resolve(test.ref)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", test.ref, err)
			}
			if _, ok := node.(map[string]any); !ok {
				t.Fatalf("Resolve(%q) = %T, expected object", test.ref, node)
			}
		})
	}
}

func TestResolveSlashEscapeTarget(t *testing.T) {
	doc := testDocument()
	node, err := doc.Resolve("#/components/schemas/Foo~1Bar")
	if err != nil {
		t.Fatal(err)
	}
	m := node.(map[string]any)
	if m["type"] != "string" {
		t.Errorf("resolved wrong node: %v", m)
	}
}

func TestResolveUnsupported(t *testing.T) {
	doc := testDocument()
	for _, ref := range []string{"other.yaml#/components", "components/schemas/User", ""} {
		_, err := doc.Resolve(ref)
		var unsupported *UnsupportedReferenceError
		if !errors.As(err, &unsupported) {
			t.Errorf("Resolve(%q) error = %v, expected UnsupportedReferenceError", ref, err)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	doc := testDocument()
	for _, ref := range []string{
		"#/components/schemas/Missing",
		"#/components/schemas/User/nope",
		"#/servers/4",
		"#/servers/x",
	} {
		_, err := doc.Resolve(ref)
		var notFound *ReferenceNotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("Resolve(%q) error = %v, expected ReferenceNotFoundError", ref, err)
		}
	}
}

func TestRefOf(t *testing.T) {
	if ref, ok := RefOf(map[string]any{"$ref": "#/components/schemas/User"}); !ok || ref != "#/components/schemas/User" {
		t.Errorf("RefOf = %q, %v", ref, ok)
	}
	if _, ok := RefOf(map[string]any{"type": "string"}); ok {
		t.Error("RefOf reported a plain schema as a reference")
	}
	if _, ok := RefOf("nope"); ok {
		t.Error("RefOf reported a non-object as a reference")
	}
}
