package compiler

import (
	"strings"

	"github.com/CodeGra-de/apigen/pkg/utils"
)

// nameEntry tracks one reference inside the registry. A reference resolved
// a second time reuses its identifier; while its alias is still being built
// (self-reference) the synthesizer must degrade to an unknown placeholder
// instead, which is what the done flag gates.
type nameEntry struct {
	name string
	done bool
}

// schemaName derives the identifier for a referenced schema: the declared
// title when present, otherwise the final path segment of the reference,
// pascal-cased and stripped of dots. Two references may not share one
// identifier.
func (c *compiler) schemaName(ref string, schema map[string]any) (string, error) {
	base := ""
	if schema != nil {
		if title, ok := schema["title"].(string); ok {
			base = title
		}
	}
	if base == "" {
		segments := strings.Split(ref, "/")
		base = segments[len(segments)-1]
	}
	name := utils.ToPascalCase(strings.ReplaceAll(base, ".", ""))
	if name == "" {
		name = "Unnamed"
	}
	if prior, taken := c.byName[name]; taken && prior != ref {
		return "", &DuplicateNameError{Name: name, Ref: ref}
	}
	c.byName[name] = ref
	return name, nil
}

// operationName derives the method name for one path/verb. A usable
// operationId wins after a single leading prefix_ segment is stripped;
// otherwise the name is synthesized from the verb and the path, with
// {param} segments turned into "by Param"/"and Param" connectors.
func operationName(verb, path, operationID string) string {
	if operationID != "" {
		id := operationID
		if i := strings.Index(id, "_"); i >= 0 {
			id = id[i+1:]
		}
		if name := utils.ToCamelCase(id); utils.IsIdentifier(name) {
			return name
		}
	}

	words := []string{strings.ToLower(verb)}
	sawParam := false
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			connector := "by"
			if sawParam {
				connector = "and"
			}
			sawParam = true
			words = append(words, connector, segment[1:len(segment)-1])
			continue
		}
		words = append(words, segment)
	}
	return utils.ToCamelCase(strings.Join(words, " "))
}
