package compiler

import (
	"regexp"
	"sort"
	"strings"

	"github.com/CodeGra-de/apigen/pkg/descriptor"
	"github.com/CodeGra-de/apigen/pkg/openapi"
)

// httpVerbs is the fixed set of path-item keys that are operations. Other
// keys (summary, description, parameters) are metadata.
var httpVerbs = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// contentTypePriority orders how a schema is picked out of a request or
// response body: the first declared content type in this order wins.
var contentTypePriority = []string{
	"*/*",
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// acceptedNoBody excludes 204 from both response buckets: no-body codes are
// not type-contributing.
const statusNoContent = "204"

// buildServices walks every path item and assembles one service per tag,
// applying the include/exclude filters before any schema is synthesized so
// that excluded operations never pull models into the artifact.
func (c *compiler) buildServices(include, exclude []*regexp.Regexp) ([]descriptor.Service, error) {
	paths, _ := c.doc.Root()["paths"].(map[string]any)
	servicesMap := map[string]*descriptor.Service{}
	seenNames := map[string]map[string]bool{}

	for _, path := range sortedKeys(paths) {
		item, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}
		itemParams, _ := item["parameters"].([]any)
		for _, verb := range httpVerbs {
			raw, ok := item[verb].(map[string]any)
			if !ok {
				continue
			}
			tags := stringSlice(raw["tags"])
			if len(tags) == 0 {
				return nil, &MissingTagsError{Method: strings.ToUpper(verb), Path: path}
			}
			if !tagAllowed(tags, include, exclude) {
				continue
			}
			tag := tags[0]

			op, err := c.buildOperation(verb, path, itemParams, raw)
			if err != nil {
				return nil, err
			}
			op.Tag = tag

			if seenNames[tag] == nil {
				seenNames[tag] = map[string]bool{}
			}
			if seenNames[tag][op.Name] {
				return nil, &DuplicateOperationNameError{Tag: tag, Name: op.Name}
			}
			seenNames[tag][op.Name] = true

			if servicesMap[tag] == nil {
				servicesMap[tag] = &descriptor.Service{Tag: tag}
			}
			servicesMap[tag].Operations = append(servicesMap[tag].Operations, op)
		}
	}

	services := make([]descriptor.Service, 0, len(servicesMap))
	for _, svc := range servicesMap {
		sort.Slice(svc.Operations, func(i, j int) bool {
			if svc.Operations[i].Path == svc.Operations[j].Path {
				return svc.Operations[i].Method < svc.Operations[j].Method
			}
			return svc.Operations[i].Path < svc.Operations[j].Path
		})
		services = append(services, *svc)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Tag < services[j].Tag })
	return services, nil
}

func (c *compiler) buildOperation(verb, path string, itemParams []any, raw map[string]any) (descriptor.Operation, error) {
	opID, _ := raw["operationId"].(string)
	deprecated, _ := raw["deprecated"].(bool)

	// Operation-level parameters are appended after path-item-level ones;
	// duplicates are not deduplicated, later entries simply serialize later.
	opParams, _ := raw["parameters"].([]any)
	merged := make([]any, 0, len(itemParams)+len(opParams))
	merged = append(merged, itemParams...)
	merged = append(merged, opParams...)

	params, err := c.buildParameters(merged)
	if err != nil {
		return descriptor.Operation{}, err
	}
	required, optional := partitionParameters(params)
	args := make([]descriptor.Parameter, 0, len(params))
	args = append(args, required...)
	args = append(args, optional...)
	if err := assignArguments(args); err != nil {
		return descriptor.Operation{}, err
	}
	required, optional = args[:len(required)], args[len(required):]

	body, err := c.buildBody(raw["requestBody"])
	if err != nil {
		return descriptor.Operation{}, err
	}
	success, errType, err := c.classifyResponses(raw["responses"])
	if err != nil {
		return descriptor.Operation{}, err
	}

	return descriptor.Operation{
		Name:       operationName(verb, path, opID),
		Method:     strings.ToUpper(verb),
		Path:       path,
		Template:   splitTemplate(path),
		Required:   required,
		Optional:   optional,
		Body:       body,
		Success:    success,
		Error:      errType,
		Deprecated: deprecated,
	}, nil
}

// partitionParameters splits parameters into the explicit argument list and
// the optional bag. Required arguments are ordered by ascending name length
// so shorter, simpler names are assigned first and win collisions.
func partitionParameters(params []descriptor.Parameter) (required, optional []descriptor.Parameter) {
	for _, p := range params {
		if p.Required {
			required = append(required, p)
		} else {
			optional = append(optional, p)
		}
	}
	sort.SliceStable(required, func(i, j int) bool {
		return len(required[i].Name) < len(required[j].Name)
	})
	return required, optional
}

// buildBody compiles the request body, classifying its wire encoding by
// content-type priority.
func (c *compiler) buildBody(node any) (*descriptor.Body, error) {
	if node == nil {
		return nil, nil
	}
	if ref, ok := openapi.RefOf(node); ok {
		target, err := c.doc.Resolve(ref)
		if err != nil {
			return nil, err
		}
		node = target
	}
	raw, ok := node.(map[string]any)
	if !ok {
		return nil, nil
	}
	content, _ := raw["content"].(map[string]any)
	contentType, media, ok := pickContent(content)
	if !ok {
		return nil, nil
	}
	t, err := c.synthesize(media["schema"])
	if err != nil {
		return nil, err
	}
	required, _ := raw["required"].(bool)
	return &descriptor.Body{
		Encoding: classifyEncoding(contentType),
		Required: required,
		Type:     t,
	}, nil
}

func classifyEncoding(contentType string) descriptor.BodyEncoding {
	switch contentType {
	case "application/x-www-form-urlencoded":
		return descriptor.EncodingForm
	case "multipart/form-data":
		return descriptor.EncodingMultipart
	default:
		return descriptor.EncodingJSON
	}
}

// pickContent selects the media entry whose content type ranks highest.
func pickContent(content map[string]any) (string, map[string]any, bool) {
	for _, ct := range contentTypePriority {
		if media, ok := content[ct].(map[string]any); ok {
			return ct, media, true
		}
	}
	return "", nil, false
}

// classifyResponses splits declared responses into the ok bucket ("default"
// or 2xx) and the err bucket, deduplicates each by structural identity,
// orders by ascending notation length, and collapses buckets into a single
// type or a union.
func (c *compiler) classifyResponses(node any) (success, errType *descriptor.Type, err error) {
	responses, _ := node.(map[string]any)
	var okBucket, errBucket []*descriptor.Type

	for _, status := range sortedKeys(responses) {
		if status == statusNoContent {
			continue
		}
		t, ok, rerr := c.responseType(responses[status])
		if rerr != nil {
			return nil, nil, rerr
		}
		if !ok {
			continue
		}
		if status == "default" || strings.HasPrefix(status, "2") {
			okBucket = append(okBucket, t)
		} else {
			errBucket = append(errBucket, t)
		}
	}

	return collapseBucket(okBucket, &descriptor.Type{Kind: descriptor.KindNull}),
		collapseBucket(errBucket, unknownType),
		nil
}

func (c *compiler) responseType(node any) (*descriptor.Type, bool, error) {
	if ref, ok := openapi.RefOf(node); ok {
		target, rerr := c.doc.Resolve(ref)
		if rerr != nil {
			return nil, false, rerr
		}
		node = target
	}
	raw, ok := node.(map[string]any)
	if !ok {
		return nil, false, nil
	}
	content, _ := raw["content"].(map[string]any)
	_, media, ok := pickContent(content)
	if !ok {
		return nil, false, nil
	}
	t, err := c.synthesize(media["schema"])
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

func collapseBucket(bucket []*descriptor.Type, empty *descriptor.Type) *descriptor.Type {
	seen := map[string]bool{}
	deduped := bucket[:0]
	for _, t := range bucket {
		key := t.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, t)
	}
	descriptor.SortByNotation(deduped)
	switch len(deduped) {
	case 0:
		return empty
	case 1:
		return deduped[0]
	default:
		return &descriptor.Type{Kind: descriptor.KindUnion, Members: deduped}
	}
}

// splitTemplate breaks a path into literal spans and parameter spans.
func splitTemplate(path string) []descriptor.Segment {
	var segments []descriptor.Segment
	literal := strings.Builder{}
	for i := 0; i < len(path); i++ {
		if path[i] == '{' {
			if j := strings.IndexByte(path[i:], '}'); j > 0 {
				if literal.Len() > 0 {
					segments = append(segments, descriptor.Segment{Literal: literal.String()})
					literal.Reset()
				}
				segments = append(segments, descriptor.Segment{Param: path[i+1 : i+j]})
				i += j
				continue
			}
		}
		literal.WriteByte(path[i])
	}
	if literal.Len() > 0 {
		segments = append(segments, descriptor.Segment{Literal: literal.String()})
	}
	return segments
}

func stringSlice(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
