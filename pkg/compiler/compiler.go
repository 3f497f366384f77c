// Package compiler turns one bundled OpenAPI document into the compiled
// descriptor.API artifact: a structural type for every reachable schema and
// an operation descriptor for every included path/verb. Compilation is a
// single synchronous pass; every registry it mutates is owned by the
// compilation context, so identical input always yields identical output.
package compiler

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/CodeGra-de/apigen/pkg/descriptor"
	"github.com/CodeGra-de/apigen/pkg/openapi"
)

// Options control one compilation run.
type Options struct {
	// IncludeTags and ExcludeTags are regex patterns matched against
	// operation tags. Exclude wins; include is a narrowing allow-list when
	// present.
	IncludeTags []string
	ExcludeTags []string

	// Optimistic marks the artifact for the convenience success-wrapper
	// calling convention.
	Optimistic bool
}

// compiler is the compilation context threaded through the recursive
// synthesis calls. It owns the name registry and the model set; nothing
// here outlives Compile.
type compiler struct {
	doc    *openapi.Document
	names  map[string]*nameEntry
	byName map[string]string
	models map[string]*descriptor.Type
}

// Compile builds the API artifact for doc. Compile-time errors are fatal:
// the first unresolvable reference, naming collision, empty composition or
// untagged operation aborts the run with no partial output.
func Compile(doc *openapi.Document, opts Options) (*descriptor.API, error) {
	include, exclude, err := compileTagFilters(opts.IncludeTags, opts.ExcludeTags)
	if err != nil {
		return nil, err
	}

	c := &compiler{
		doc:    doc,
		names:  map[string]*nameEntry{},
		byName: map[string]string{},
		models: map[string]*descriptor.Type{},
	}
	services, err := c.buildServices(include, exclude)
	if err != nil {
		return nil, err
	}

	// Models are created on first reference, so filtering before synthesis
	// already pruned everything only excluded operations would have used.
	names := make([]string, 0, len(c.models))
	for name := range c.models {
		names = append(names, name)
	}
	sort.Strings(names)
	models := make([]descriptor.Model, 0, len(names))
	for _, name := range names {
		models = append(models, descriptor.Model{Name: name, Type: c.models[name]})
	}

	return &descriptor.API{
		Services:   services,
		Models:     models,
		Optimistic: opts.Optimistic,
	}, nil
}

// compileTagFilters compiles regex patterns for tag filtering.
func compileTagFilters(include, exclude []string) ([]*regexp.Regexp, []*regexp.Regexp, error) {
	inc := make([]*regexp.Regexp, 0, len(include))
	for _, p := range include {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid includeTags pattern %q: %w", p, err)
		}
		inc = append(inc, r)
	}
	exc := make([]*regexp.Regexp, 0, len(exclude))
	for _, p := range exclude {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid excludeTags pattern %q: %w", p, err)
		}
		exc = append(exc, r)
	}
	return inc, exc, nil
}

// tagAllowed applies the filters to an operation's tags: included when any
// tag matches any include pattern (or no include patterns exist), excluded
// when any tag matches any exclude pattern. Exclude wins.
func tagAllowed(tags []string, include, exclude []*regexp.Regexp) bool {
	included := len(include) == 0
	for _, tag := range tags {
		for _, r := range include {
			if r.MatchString(tag) {
				included = true
			}
		}
	}
	if !included {
		return false
	}
	for _, tag := range tags {
		for _, r := range exclude {
			if r.MatchString(tag) {
				return false
			}
		}
	}
	return true
}
