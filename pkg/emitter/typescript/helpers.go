package typescript

import (
	"sort"
	"strings"

	"github.com/CodeGra-de/apigen/pkg/descriptor"
	"github.com/CodeGra-de/apigen/pkg/utils"
)

// tsType renders a descriptor type as TypeScript source. The canonical
// notation is already TypeScript-shaped, including model names for refs.
func tsType(t *descriptor.Type) string {
	return t.String()
}

// pathTemplate renders the operation's URL as a TypeScript template
// literal, substituting each path parameter's argument.
func pathTemplate(op descriptor.Operation) string {
	var b strings.Builder
	b.WriteByte('`')
	for _, seg := range op.Template {
		if seg.Param == "" {
			b.WriteString(seg.Literal)
			continue
		}
		arg := seg.Param
		for _, p := range append(op.Required, op.Optional...) {
			if p.In == descriptor.InPath && p.Name == seg.Param {
				arg = p.Arg
				break
			}
		}
		b.WriteString("${encodeURIComponent(String(" + arg + "))}")
	}
	b.WriteByte('`')
	return b.String()
}

// methodArgs builds the parameter list of a generated service method:
// required arguments first, then the body, then an optional query object.
func methodArgs(op descriptor.Operation) []string {
	var args []string
	for _, p := range op.Required {
		args = append(args, p.Arg+": "+tsType(p.Type))
	}
	if op.Body != nil {
		opt := ""
		if !op.Body.Required {
			opt = "?"
		}
		args = append(args, "body"+opt+": "+tsType(op.Body.Type))
	}
	if query := queryType(op); query != "" {
		args = append(args, "query?: "+query)
	}
	return args
}

// queryType renders the inline object type of the operation's optional
// parameters, or "" when the operation has none.
func queryType(op descriptor.Operation) string {
	if len(op.Optional) == 0 {
		return ""
	}
	parts := make([]string, 0, len(op.Optional))
	for _, p := range op.Optional {
		parts = append(parts, quoteProp(p.Arg)+"?: "+tsType(p.Type))
	}
	return "{" + strings.Join(parts, "; ") + "}"
}

// queryParams returns the operation's query parameters, required first.
func queryParams(op descriptor.Operation) []descriptor.Parameter {
	var params []descriptor.Parameter
	for _, p := range append(op.Required, op.Optional...) {
		if p.In == descriptor.InQuery {
			params = append(params, p)
		}
	}
	return params
}

// headerParams returns the operation's header parameters, required first.
func headerParams(op descriptor.Operation) []descriptor.Parameter {
	var params []descriptor.Parameter
	for _, p := range append(op.Required, op.Optional...) {
		if p.In == descriptor.InHeader {
			params = append(params, p)
		}
	}
	return params
}

// modelRefs collects the sorted set of model names a service's operations
// reference, for the generated import line.
func modelRefs(svc descriptor.Service) []string {
	seen := map[string]bool{}
	for _, op := range svc.Operations {
		for _, p := range append(op.Required, op.Optional...) {
			collectRefs(p.Type, seen)
		}
		if op.Body != nil {
			collectRefs(op.Body.Type, seen)
		}
		collectRefs(op.Success, seen)
		collectRefs(op.Error, seen)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectRefs(t *descriptor.Type, seen map[string]bool) {
	if t == nil {
		return
	}
	if t.Kind == descriptor.KindRef && t.Ref != "" {
		seen[t.Ref] = true
	}
	collectRefs(t.Elem, seen)
	for _, f := range t.Fields {
		collectRefs(f.Type, seen)
	}
	for _, m := range t.Members {
		collectRefs(m, seen)
	}
}

func serviceName(tag string) string {
	return utils.ToPascalCase(tag) + "Service"
}

func serviceProp(tag string) string {
	return utils.ToCamelCase(tag)
}

func fileBase(tag string) string {
	return utils.ToSnakeCase(tag)
}

// quoteProp quotes property names that are not valid identifiers.
func quoteProp(name string) string {
	if utils.IsIdentifier(name) {
		return name
	}
	return `"` + name + `"`
}
