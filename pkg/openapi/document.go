package openapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Document is one fully loaded OpenAPI document, held as the decoded JSON
// tree. Schema nodes handed to the compiler are views into this tree; the
// document is read-only for the whole compilation.
type Document struct {
	root map[string]any
}

// NewDocument wraps a decoded JSON tree.
func NewDocument(root map[string]any) *Document {
	return &Document{root: root}
}

// Root returns the top-level object of the document.
func (d *Document) Root() map[string]any {
	return d.root
}

// UnsupportedReferenceError reports a $ref that does not point into the
// current document. External references must be bundled before compilation.
type UnsupportedReferenceError struct {
	Ref string
}

func (e *UnsupportedReferenceError) Error() string {
	return fmt.Sprintf("unsupported reference %q: only local references (#/...) are supported", e.Ref)
}

// ReferenceNotFoundError reports a local $ref whose pointer traversal missed.
type ReferenceNotFoundError struct {
	Ref     string
	Segment string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("reference %q not found: no element %q", e.Ref, e.Segment)
}

// Resolve follows a JSON Pointer reference of the form #/a/b/c to the node
// it designates. Segments are percent-decoded and JSON-Pointer-unescaped
// (~1 to /, ~0 to ~) before traversal. Cycle detection is deliberately not
// done here; the type synthesizer breaks cycles via its name registry.
func (d *Document) Resolve(ref string) (any, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, &UnsupportedReferenceError{Ref: ref}
	}
	var node any = d.root
	for _, raw := range strings.Split(ref[2:], "/") {
		segment := decodePointerSegment(raw)
		switch cur := node.(type) {
		case map[string]any:
			next, ok := cur[segment]
			if !ok {
				return nil, &ReferenceNotFoundError{Ref: ref, Segment: segment}
			}
			node = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(cur) {
				return nil, &ReferenceNotFoundError{Ref: ref, Segment: segment}
			}
			node = cur[idx]
		default:
			return nil, &ReferenceNotFoundError{Ref: ref, Segment: segment}
		}
	}
	return node, nil
}

// decodePointerSegment undoes percent-encoding and the JSON Pointer escapes.
// The ~1 escape must be decoded before ~0, otherwise "~01" turns into "/".
func decodePointerSegment(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// RefOf returns the $ref pointer of a schema node, if it is a reference.
func RefOf(node any) (string, bool) {
	m, ok := node.(map[string]any)
	if !ok {
		return "", false
	}
	ref, ok := m["$ref"].(string)
	return ref, ok && ref != ""
}
