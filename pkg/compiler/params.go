package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/CodeGra-de/apigen/pkg/descriptor"
	"github.com/CodeGra-de/apigen/pkg/openapi"
	"github.com/CodeGra-de/apigen/pkg/utils"
)

// bracketed matches parameter names of the form base[sub].
var bracketed = regexp.MustCompile(`^([^\[\]]+)\[([^\[\]]+)\]$`)

// buildParameters compiles the merged path-item and operation parameter
// lists. Bracket-named siblings (filter[a], filter[b]) collapse into one
// synthetic deepObject parameter, which is how OpenAPI documents express
// nested deepObject parameters as a flat list.
func (c *compiler) buildParameters(nodes []any) ([]descriptor.Parameter, error) {
	params := make([]descriptor.Parameter, 0, len(nodes))
	for _, node := range nodes {
		p, err := c.buildParameter(node)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return mergeBracketed(params), nil
}

func (c *compiler) buildParameter(node any) (descriptor.Parameter, error) {
	if ref, ok := openapi.RefOf(node); ok {
		target, err := c.doc.Resolve(ref)
		if err != nil {
			return descriptor.Parameter{}, err
		}
		node = target
	}
	raw, ok := node.(map[string]any)
	if !ok {
		return descriptor.Parameter{}, fmt.Errorf("invalid parameter node %T", node)
	}

	name, _ := raw["name"].(string)
	in, _ := raw["in"].(string)
	required, _ := raw["required"].(bool)
	style := descriptor.StyleForm
	if s, ok := raw["style"].(string); ok && s != "" {
		style = descriptor.Style(s)
	}
	explode := style == descriptor.StyleForm || style == descriptor.StyleDeepObject
	if e, ok := raw["explode"].(bool); ok {
		explode = e
	}

	t, err := c.synthesize(raw["schema"])
	if err != nil {
		return descriptor.Parameter{}, err
	}
	return descriptor.Parameter{
		Name:     name,
		In:       descriptor.Location(in),
		Required: required,
		Style:    style,
		Explode:  explode,
		Type:     t,
	}, nil
}

// mergeBracketed groups bracket-named query parameters by their base name
// and replaces each group with one object-typed deepObject parameter whose
// properties are the union of the bracketed sub-schemas.
func mergeBracketed(params []descriptor.Parameter) []descriptor.Parameter {
	type group struct {
		index    int
		param    descriptor.Parameter
		fields   []descriptor.Field
		required bool
	}
	groups := map[string]*group{}
	out := make([]descriptor.Parameter, 0, len(params))

	for _, p := range params {
		match := bracketed.FindStringSubmatch(p.Name)
		if match == nil || p.In != descriptor.InQuery {
			out = append(out, p)
			continue
		}
		base, sub := match[1], match[2]
		g, ok := groups[base]
		if !ok {
			g = &group{
				index: len(out),
				param: descriptor.Parameter{
					Name:    base,
					In:      descriptor.InQuery,
					Style:   descriptor.StyleDeepObject,
					Explode: true,
				},
			}
			groups[base] = g
			out = append(out, descriptor.Parameter{}) // placeholder, filled below
		}
		g.fields = append(g.fields, descriptor.Field{Name: sub, Type: p.Type, Optional: !p.Required})
		g.required = g.required || p.Required
	}

	for _, g := range groups {
		p := g.param
		p.Required = g.required
		p.Type = &descriptor.Type{Kind: descriptor.KindObject, Fields: g.fields}
		out[g.index] = p
	}
	return out
}

// assignArguments derives argument identifiers for the operation's
// parameters. The stripped, namespace-free camel-cased name is tried first;
// on collision the unstripped qualified form is used instead. Callers pass
// parameters shortest name first, so earlier, simpler names win collisions.
func assignArguments(params []descriptor.Parameter) error {
	taken := map[string]bool{}
	for i := range params {
		p := &params[i]
		stripped := p.Name
		if idx := strings.LastIndex(stripped, "."); idx >= 0 {
			stripped = stripped[idx+1:]
		}
		arg := utils.ToCamelCase(stripped)
		if arg == "" || taken[arg] {
			arg = utils.ToCamelCase(p.Name)
		}
		if arg == "" || taken[arg] {
			return fmt.Errorf("cannot derive a unique argument name for parameter %q", p.Name)
		}
		taken[arg] = true
		p.Arg = arg
	}
	return nil
}
