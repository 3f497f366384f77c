package openapi

import (
	"fmt"
	"net/url"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
)

// LoadDocument loads an OpenAPI document from a local file path or an
// HTTP(S) URL and returns the raw document tree the compiler works on.
// External references are resolved by the loader, so the compiler only ever
// sees local #/ pointers.
func LoadDocument(input string) (*Document, error) {
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	doc, err := loadWithLoader(loader, input)
	if err != nil {
		return nil, err
	}
	return fromParsed(doc)
}

// ValidateDocument loads and validates an OpenAPI document.
func ValidateDocument(input string) error {
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	doc, err := loadWithLoader(loader, input)
	if err != nil {
		return err
	}
	return doc.Validate(loader.Context)
}

func loadWithLoader(loader *openapi3.Loader, input string) (*openapi3.T, error) {
	// Try to parse as URL; if it looks like http(s), fetch via URL.
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return loader.LoadFromURI(u)
	}
	return loader.LoadFromFile(input)
}

// fromParsed converts a parsed openapi3 document back into the plain JSON
// tree. Round-tripping through JSON keeps $ref nodes intact while shedding
// the loader's internal pointers.
func fromParsed(doc *openapi3.T) (*Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return NewDocument(root), nil
}
