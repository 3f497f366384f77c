// Package codec implements the runtime validators paired with compiled
// types: decoding an untyped value into the shape a descriptor promises, or
// reporting a structured failure, and the wire query-string codec.
package codec

import (
	"fmt"
	"sort"
	"time"

	"github.com/CodeGra-de/apigen/pkg/descriptor"
)

// Models resolves named type aliases during decoding. It is the frozen
// model set of one compiled API.
type Models map[string]*descriptor.Type

// DecodeError is a single validation failure. Path is a JSON Pointer to the
// offending value, empty for the root.
type DecodeError struct {
	Path    string
	Message string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "decode: " + e.Message
	}
	return fmt.Sprintf("decode: %s at %s", e.Message, e.Path)
}

func failf(path, format string, args ...any) error {
	return &DecodeError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// Decode validates raw against t and returns the decoded value. Object
// values recurse field by field and surface the first failure in field
// order; unions succeed on the first branch that validates; intersections
// require every branch and merge object results.
func Decode(t *descriptor.Type, models Models, raw any) (any, error) {
	return decode(t, models, raw, "")
}

func decode(t *descriptor.Type, models Models, raw any, path string) (any, error) {
	if t == nil {
		return raw, nil
	}
	switch t.Kind {
	case descriptor.KindUnknown:
		return raw, nil
	case descriptor.KindNull:
		if raw != nil {
			return nil, failf(path, "expected null, got %T", raw)
		}
		return nil, nil
	case descriptor.KindBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, failf(path, "expected boolean, got %T", raw)
		}
		return b, nil
	case descriptor.KindNumber:
		n, ok := asNumber(raw)
		if !ok {
			return nil, failf(path, "expected number, got %T", raw)
		}
		return n, nil
	case descriptor.KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, failf(path, "expected string, got %T", raw)
		}
		return s, nil
	case descriptor.KindDate:
		return decodeDate(raw, path)
	case descriptor.KindLiteral:
		if !literalEqual(t.Literal, raw) {
			return nil, failf(path, "expected literal %s", (&descriptor.Type{Kind: descriptor.KindLiteral, Literal: t.Literal}).String())
		}
		return raw, nil
	case descriptor.KindArray:
		items, ok := raw.([]any)
		if !ok {
			return nil, failf(path, "expected array, got %T", raw)
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := decode(t.Elem, models, item, fmt.Sprintf("%s/%d", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case descriptor.KindObject:
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, failf(path, "expected object, got %T", raw)
		}
		out := make(map[string]any, len(t.Fields))
		for _, f := range t.Fields {
			value, present := obj[f.Name]
			if !present {
				if f.Optional {
					continue
				}
				return nil, failf(path+"/"+f.Name, "missing required field")
			}
			v, err := decode(f.Type, models, value, path+"/"+f.Name)
			if err != nil {
				return nil, err
			}
			out[f.Name] = v
		}
		return out, nil
	case descriptor.KindRecord:
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, failf(path, "expected object, got %T", raw)
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(obj))
		for _, k := range keys {
			v, err := decode(t.Elem, models, obj[k], path+"/"+k)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	case descriptor.KindUnion:
		for _, member := range t.Members {
			if v, err := decode(member, models, raw, path); err == nil {
				return v, nil
			}
		}
		return nil, failf(path, "value matched no union branch of %s", t.String())
	case descriptor.KindIntersection:
		return decodeIntersection(t, models, raw, path)
	case descriptor.KindRef:
		target, ok := models[t.Ref]
		if !ok {
			return nil, failf(path, "unknown named type %q", t.Ref)
		}
		return decode(target, models, raw, path)
	default:
		return nil, failf(path, "unsupported type kind %q", t.Kind)
	}
}

// decodeIntersection requires every branch to validate. Object results are
// structurally merged left to right; once either side is non-object the
// later branch's value wins outright.
func decodeIntersection(t *descriptor.Type, models Models, raw any, path string) (any, error) {
	var acc any
	for i, member := range t.Members {
		v, err := decode(member, models, raw, path)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			acc = v
			continue
		}
		prev, prevObj := acc.(map[string]any)
		next, nextObj := v.(map[string]any)
		if prevObj && nextObj {
			merged := make(map[string]any, len(prev)+len(next))
			for k, mv := range prev {
				merged[k] = mv
			}
			for k, mv := range next {
				merged[k] = mv
			}
			acc = merged
		} else {
			acc = v
		}
	}
	return acc, nil
}

func decodeDate(raw any, path string) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, failf(path, "expected date-time string: %v", err)
		}
		return ts, nil
	default:
		return nil, failf(path, "expected date-time string, got %T", raw)
	}
}

func asNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func literalEqual(want, got any) bool {
	if wn, ok := asNumber(want); ok {
		gn, ok := asNumber(got)
		return ok && wn == gn
	}
	return want == got
}
