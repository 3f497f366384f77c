package compiler

import (
	"sort"

	"github.com/CodeGra-de/apigen/pkg/descriptor"
	"github.com/CodeGra-de/apigen/pkg/openapi"
)

var unknownType = &descriptor.Type{Kind: descriptor.KindUnknown}

// synthesize compiles one schema node into a type descriptor. References
// become named aliases shared through the model set; everything else is
// inline, owned by its use site.
func (c *compiler) synthesize(node any) (*descriptor.Type, error) {
	if ref, ok := openapi.RefOf(node); ok {
		return c.synthesizeRef(ref)
	}
	schema, ok := node.(map[string]any)
	if !ok {
		return unknownType, nil
	}
	t, err := c.synthesizeSchema(schema)
	if err != nil {
		return nil, err
	}
	if nullable, _ := schema["nullable"].(bool); nullable {
		t = descriptor.Nullable(t)
	}
	return t, nil
}

// synthesizeRef looks up or creates the named alias for a reference. While
// the alias is mid-construction, a self-reference returns an opaque unknown
// placeholder so recursion stays finite; the alias is only finalized once
// its full schema has been visited.
func (c *compiler) synthesizeRef(ref string) (*descriptor.Type, error) {
	if entry, ok := c.names[ref]; ok {
		if !entry.done {
			return unknownType, nil
		}
		return &descriptor.Type{Kind: descriptor.KindRef, Ref: entry.name}, nil
	}

	target, err := c.doc.Resolve(ref)
	if err != nil {
		return nil, err
	}
	schema, _ := target.(map[string]any)
	name, err := c.schemaName(ref, schema)
	if err != nil {
		return nil, err
	}
	entry := &nameEntry{name: name}
	c.names[ref] = entry

	t, err := c.synthesize(target)
	if err != nil {
		return nil, err
	}
	c.models[name] = t
	entry.done = true
	return &descriptor.Type{Kind: descriptor.KindRef, Ref: name}, nil
}

// synthesizeSchema applies the type algebra, first match wins.
func (c *compiler) synthesizeSchema(schema map[string]any) (*descriptor.Type, error) {
	if members, ok := schemaList(schema, "oneOf"); ok {
		return c.synthesizeUnion(members)
	}
	if members, ok := schemaList(schema, "anyOf"); ok {
		// anyOf is treated identically to oneOf: a structural union with no
		// overlap checking.
		return c.synthesizeUnion(members)
	}
	if members, present := schemaListPresent(schema, "allOf"); present {
		return c.synthesizeAllOf(members)
	}
	if items, ok := schema["items"]; ok {
		elem, err := c.synthesize(items)
		if err != nil {
			return nil, err
		}
		return &descriptor.Type{Kind: descriptor.KindArray, Elem: elem}, nil
	}
	if hasObjectShape(schema) {
		return c.synthesizeObject(schema)
	}
	if values, ok := schema["enum"].([]any); ok {
		return c.synthesizeEnum(values)
	}
	if format, _ := schema["format"].(string); format == "binary" {
		// Binary upload bodies are raw text at the type level.
		return &descriptor.Type{Kind: descriptor.KindString}, nil
	}
	switch schema["type"] {
	case "integer", "number":
		return &descriptor.Type{Kind: descriptor.KindNumber}, nil
	case "string":
		if format, _ := schema["format"].(string); format == "date-time" {
			return &descriptor.Type{Kind: descriptor.KindDate}, nil
		}
		return &descriptor.Type{Kind: descriptor.KindString}, nil
	case "null":
		return &descriptor.Type{Kind: descriptor.KindNull}, nil
	case "boolean":
		return &descriptor.Type{Kind: descriptor.KindBoolean}, nil
	}
	return unknownType, nil
}

func (c *compiler) synthesizeUnion(members []any) (*descriptor.Type, error) {
	types := make([]*descriptor.Type, 0, len(members))
	for _, member := range members {
		t, err := c.synthesize(member)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if len(types) == 1 {
		return types[0], nil
	}
	return &descriptor.Type{Kind: descriptor.KindUnion, Members: types}, nil
}

// synthesizeAllOf left-folds the members into a structural intersection.
func (c *compiler) synthesizeAllOf(members []any) (*descriptor.Type, error) {
	if len(members) == 0 {
		return nil, &EmptyAllOfError{}
	}
	types := make([]*descriptor.Type, 0, len(members))
	for _, member := range members {
		t, err := c.synthesize(member)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if len(types) == 1 {
		return types[0], nil
	}
	return &descriptor.Type{Kind: descriptor.KindIntersection, Members: types}, nil
}

func (c *compiler) synthesizeObject(schema map[string]any) (*descriptor.Type, error) {
	var declared *descriptor.Type
	if props, ok := schema["properties"].(map[string]any); ok && len(props) > 0 {
		required := map[string]bool{}
		if list, ok := schema["required"].([]any); ok {
			for _, r := range list {
				if name, ok := r.(string); ok {
					required[name] = true
				}
			}
		}
		fields := make([]descriptor.Field, 0, len(props))
		for _, name := range sortedKeys(props) {
			t, err := c.synthesize(props[name])
			if err != nil {
				return nil, err
			}
			fields = append(fields, descriptor.Field{Name: name, Type: t, Optional: !required[name]})
		}
		declared = &descriptor.Type{Kind: descriptor.KindObject, Fields: fields}
	}

	var open *descriptor.Type
	switch ap := schema["additionalProperties"].(type) {
	case bool:
		if ap {
			open = &descriptor.Type{Kind: descriptor.KindRecord, Elem: unknownType}
		}
	case map[string]any:
		elem, err := c.synthesize(ap)
		if err != nil {
			return nil, err
		}
		open = &descriptor.Type{Kind: descriptor.KindRecord, Elem: elem}
	}

	switch {
	case declared != nil && open != nil:
		return &descriptor.Type{Kind: descriptor.KindIntersection, Members: []*descriptor.Type{declared, open}}, nil
	case declared != nil:
		return declared, nil
	case open != nil:
		return open, nil
	default:
		// properties: {} with no additionalProperties
		return &descriptor.Type{Kind: descriptor.KindObject}, nil
	}
}

// synthesizeEnum builds a union of literal types. Null members turn into
// nullability; an enum of only null is the null type itself.
func (c *compiler) synthesizeEnum(values []any) (*descriptor.Type, error) {
	if len(values) == 0 {
		return nil, &EmptyEnumError{}
	}
	hasNull := false
	literals := make([]*descriptor.Type, 0, len(values))
	for _, v := range values {
		if v == nil {
			hasNull = true
			continue
		}
		literals = append(literals, &descriptor.Type{Kind: descriptor.KindLiteral, Literal: v})
	}
	if len(literals) == 0 {
		return &descriptor.Type{Kind: descriptor.KindNull}, nil
	}
	var t *descriptor.Type
	if len(literals) == 1 {
		t = literals[0]
	} else {
		t = &descriptor.Type{Kind: descriptor.KindUnion, Members: literals}
	}
	if hasNull {
		t = descriptor.Nullable(t)
	}
	return t, nil
}

// hasObjectShape reports whether the schema declares properties or an
// additionalProperties constraint worth compiling. A present-but-empty
// properties map still counts: it compiles to the empty object type.
func hasObjectShape(schema map[string]any) bool {
	if _, ok := schema["properties"].(map[string]any); ok {
		return true
	}
	switch ap := schema["additionalProperties"].(type) {
	case bool:
		return ap
	case map[string]any:
		return true
	}
	return false
}

// schemaList fetches a non-empty composition member list.
func schemaList(schema map[string]any, key string) ([]any, bool) {
	list, ok := schema[key].([]any)
	return list, ok && len(list) > 0
}

// schemaListPresent distinguishes an absent list from a present-but-empty
// one, which allOf needs to report as fatal.
func schemaListPresent(schema map[string]any, key string) ([]any, bool) {
	raw, present := schema[key]
	if !present {
		return nil, false
	}
	list, _ := raw.([]any)
	return list, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
