package descriptor

import (
	"sort"
	"strconv"
	"strings"
)

// String renders the canonical structural notation of a type. The notation
// doubles as the identity used to deduplicate response types and as the sort
// key that orders union members, so it must be deterministic.
func (t *Type) String() string {
	if t == nil {
		return "unknown"
	}
	switch t.Kind {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindDate:
		return "Date"
	case KindRef:
		if t.Ref == "" {
			return "unknown"
		}
		return t.Ref
	case KindLiteral:
		return literalString(t.Literal)
	case KindArray:
		inner := t.Elem.String()
		if strings.Contains(inner, " | ") || strings.Contains(inner, " & ") {
			inner = "(" + inner + ")"
		}
		return "Array<" + inner + ">"
	case KindRecord:
		return "Record<string, " + t.Elem.String() + ">"
	case KindObject:
		if len(t.Fields) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(t.Fields))
		for _, f := range t.Fields {
			opt := ""
			if f.Optional {
				opt = "?"
			}
			parts = append(parts, f.Name+opt+": "+f.Type.String())
		}
		return "{" + strings.Join(parts, "; ") + "}"
	case KindUnion:
		return joinMembers(t.Members, " | ")
	case KindIntersection:
		return joinMembers(t.Members, " & ")
	default:
		return "unknown"
	}
}

func joinMembers(members []*Type, sep string) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		s := m.String()
		if sep == " & " && strings.Contains(s, " | ") {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep)
}

func literalString(v any) string {
	switch lit := v.(type) {
	case string:
		return strconv.Quote(lit)
	case bool:
		return strconv.FormatBool(lit)
	case float64:
		return strconv.FormatFloat(lit, 'f', -1, 64)
	case int:
		return strconv.Itoa(lit)
	case nil:
		return "null"
	default:
		return "unknown"
	}
}

// SortByNotation orders types by ascending length of their notation, with
// the notation itself as tie-break so equal-length distinct types still come
// out in a stable order.
func SortByNotation(types []*Type) {
	sort.SliceStable(types, func(i, j int) bool {
		a, b := types[i].String(), types[j].String()
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
}
