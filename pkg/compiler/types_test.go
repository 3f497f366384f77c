package compiler

import (
	"errors"
	"testing"

	"github.com/CodeGra-de/apigen/pkg/descriptor"
	"github.com/CodeGra-de/apigen/pkg/openapi"
)

func testCompiler(root map[string]any) *compiler {
	return &compiler{
		doc:    openapi.NewDocument(root),
		names:  map[string]*nameEntry{},
		byName: map[string]string{},
		models: map[string]*descriptor.Type{},
	}
}

func mustSynthesize(t *testing.T, c *compiler, schema any) *descriptor.Type {
	t.Helper()
	typ, err := c.synthesize(schema)
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	return typ
}

func TestSynthesizePrimitives(t *testing.T) {
	tests := []struct {
		name     string
		schema   map[string]any
		expected string
	}{
		{"integer", map[string]any{"type": "integer"}, "number"},
		{"number", map[string]any{"type": "number"}, "number"},
		{"string", map[string]any{"type": "string"}, "string"},
		{"date-time", map[string]any{"type": "string", "format": "date-time"}, "Date"},
		{"binary", map[string]any{"type": "string", "format": "binary"}, "string"},
		{"boolean", map[string]any{"type": "boolean"}, "boolean"},
		{"null", map[string]any{"type": "null"}, "null"},
		{"no type", map[string]any{}, "unknown"},
		{"empty properties", map[string]any{"properties": map[string]any{}}, "{}"},
		{"nullable string", map[string]any{"type": "string", "nullable": true}, "string | null"},
		{"array", map[string]any{"items": map[string]any{"type": "integer"}}, "Array<number>"},
	}
	c := testCompiler(map[string]any{})
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := mustSynthesize(t, c, test.schema).String(); got != test.expected {
				t.Errorf("synthesize(%v) = %q, expected %q", test.schema, got, test.expected)
			}
		})
	}
}

func TestSynthesizeEnum(t *testing.T) {
	c := testCompiler(map[string]any{})

	tests := []struct {
		name     string
		values   []any
		expected string
	}{
		{"strings", []any{"a", "b"}, `"a" | "b"`},
		{"with null", []any{"a", "b", nil}, `"a" | "b" | null`},
		{"single with null", []any{"a", nil}, `"a" | null`},
		{"only null", []any{nil}, "null"},
		{"numbers", []any{1.0, 2.0}, "1 | 2"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := mustSynthesize(t, c, map[string]any{"enum": test.values}).String()
			if got != test.expected {
				t.Errorf("enum %v = %q, expected %q", test.values, got, test.expected)
			}
		})
	}

	_, err := c.synthesize(map[string]any{"enum": []any{}})
	var emptyEnum *EmptyEnumError
	if !errors.As(err, &emptyEnum) {
		t.Errorf("empty enum error = %v, expected EmptyEnumError", err)
	}
}

func TestSynthesizeCompositions(t *testing.T) {
	c := testCompiler(map[string]any{})
	str := map[string]any{"type": "string"}
	num := map[string]any{"type": "number"}

	if got := mustSynthesize(t, c, map[string]any{"oneOf": []any{str, num}}).String(); got != "string | number" {
		t.Errorf("oneOf = %q", got)
	}
	// anyOf is a structural union, identical to oneOf
	if got := mustSynthesize(t, c, map[string]any{"anyOf": []any{str, num}}).String(); got != "string | number" {
		t.Errorf("anyOf = %q", got)
	}

	objA := map[string]any{"properties": map[string]any{"a": num}, "required": []any{"a"}}
	objB := map[string]any{"properties": map[string]any{"b": str}, "required": []any{"b"}}
	if got := mustSynthesize(t, c, map[string]any{"allOf": []any{objA, objB}}).String(); got != "{a: number} & {b: string}" {
		t.Errorf("allOf = %q", got)
	}

	_, err := c.synthesize(map[string]any{"allOf": []any{}})
	var emptyAllOf *EmptyAllOfError
	if !errors.As(err, &emptyAllOf) {
		t.Errorf("empty allOf error = %v, expected EmptyAllOfError", err)
	}
}

func TestSynthesizeObject(t *testing.T) {
	c := testCompiler(map[string]any{})

	schema := map[string]any{
		"properties": map[string]any{
			"id":   map[string]any{"type": "integer"},
			"name": map[string]any{"type": "string"},
		},
		"required": []any{"id"},
	}
	if got := mustSynthesize(t, c, schema).String(); got != "{id: number; name?: string}" {
		t.Errorf("object = %q", got)
	}

	schema["additionalProperties"] = map[string]any{"type": "string"}
	if got := mustSynthesize(t, c, schema).String(); got != "{id: number; name?: string} & Record<string, string>" {
		t.Errorf("object with additionalProperties = %q", got)
	}

	open := map[string]any{"additionalProperties": true}
	if got := mustSynthesize(t, c, open).String(); got != "Record<string, unknown>" {
		t.Errorf("open map = %q", got)
	}
}

func TestSynthesizeRef(t *testing.T) {
	c := testCompiler(map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"User": map[string]any{
					"properties": map[string]any{"id": map[string]any{"type": "integer"}},
					"required":   []any{"id"},
				},
			},
		},
	})

	ref := map[string]any{"$ref": "#/components/schemas/User"}
	typ := mustSynthesize(t, c, ref)
	if typ.Kind != descriptor.KindRef || typ.Ref != "User" {
		t.Fatalf("ref = %+v", typ)
	}
	if c.models["User"] == nil || c.models["User"].String() != "{id: number}" {
		t.Errorf("model User = %v", c.models["User"])
	}

	// a second resolution shares the identifier, not a duplicate
	again := mustSynthesize(t, c, ref)
	if again.Ref != "User" {
		t.Errorf("second resolution = %+v", again)
	}
	if len(c.models) != 1 {
		t.Errorf("models = %d, expected 1", len(c.models))
	}
}

func TestSynthesizeRefCycle(t *testing.T) {
	c := testCompiler(map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"Node": map[string]any{
					"properties": map[string]any{
						"next": map[string]any{"$ref": "#/components/schemas/Node"},
					},
				},
			},
		},
	})

	typ := mustSynthesize(t, c, map[string]any{"$ref": "#/components/schemas/Node"})
	if typ.Kind != descriptor.KindRef || typ.Ref != "Node" {
		t.Fatalf("cyclic ref = %+v", typ)
	}
	// the self-reference degraded to unknown instead of recursing
	if got := c.models["Node"].String(); got != "{next?: unknown}" {
		t.Errorf("model Node = %q", got)
	}
}

func TestSynthesizeRefUsesTitle(t *testing.T) {
	c := testCompiler(map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"user.profile": map[string]any{
					"title": "User Profile",
					"type":  "object",
				},
			},
		},
	})
	typ := mustSynthesize(t, c, map[string]any{"$ref": "#/components/schemas/user.profile"})
	if typ.Ref != "UserProfile" {
		t.Errorf("ref name = %q, expected UserProfile", typ.Ref)
	}
}

func TestSynthesizeDuplicateName(t *testing.T) {
	c := testCompiler(map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"user_profile": map[string]any{"type": "object", "properties": map[string]any{"a": map[string]any{"type": "string"}}},
				"UserProfile":  map[string]any{"type": "object", "properties": map[string]any{"b": map[string]any{"type": "string"}}},
			},
		},
	})
	if _, err := c.synthesize(map[string]any{"$ref": "#/components/schemas/user_profile"}); err != nil {
		t.Fatalf("first ref failed: %v", err)
	}
	_, err := c.synthesize(map[string]any{"$ref": "#/components/schemas/UserProfile"})
	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Errorf("duplicate name error = %v, expected DuplicateNameError", err)
	}
}

func TestSynthesizeUnresolvableRef(t *testing.T) {
	c := testCompiler(map[string]any{})
	_, err := c.synthesize(map[string]any{"$ref": "#/components/schemas/Ghost"})
	var notFound *openapi.ReferenceNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("error = %v, expected ReferenceNotFoundError", err)
	}
}
