// Package apigen compiles OpenAPI documents into API clients.
//
// The package offers a small facade over the compiler and emitter layers:
// Compile turns a document into a language-agnostic API descriptor, and
// Generate writes a complete client source tree from it.
//
// Quick Start:
//
//	import "github.com/CodeGra-de/apigen"
//
//	err := apigen.GenerateTypeScriptClient(
//		"https://petstore3.swagger.io/api/v3/openapi.json",
//		"./generated",
//		"petstore-client",
//		"PetStoreClient",
//	)
//
// The compiled descriptor can also be executed directly against a server
// through the runtime package, without generating any code.
package apigen

import (
	"github.com/CodeGra-de/apigen/internal/cli"
	"github.com/CodeGra-de/apigen/pkg/compiler"
	"github.com/CodeGra-de/apigen/pkg/descriptor"
	"github.com/CodeGra-de/apigen/pkg/openapi"
)

// GenerateOptions control a single generation run.
type GenerateOptions struct {
	// ConfigPath selects a YAML config file; when set the remaining
	// single-client fields are ignored.
	ConfigPath   string
	SingleClient string

	Spec        string
	Type        string
	OutDir      string
	PackageName string
	Name        string
	IncludeTags []string
	ExcludeTags []string
	Optimistic  bool
}

// GenerateTypeScriptClient generates a TypeScript client with minimal
// configuration from a spec file or HTTP(S) URL.
func GenerateTypeScriptClient(spec, outDir, packageName, clientName string) error {
	return Generate(GenerateOptions{
		Spec:        spec,
		Type:        "typescript",
		OutDir:      outDir,
		PackageName: packageName,
		Name:        clientName,
	})
}

// Generate runs a generation with full configuration options.
func Generate(opts GenerateOptions) error {
	return cli.RunGenerate(cli.RunGenerateParams{
		ConfigPath:   opts.ConfigPath,
		SingleClient: opts.SingleClient,
		Fallback: cli.FallbackParams{
			Spec:        opts.Spec,
			Type:        opts.Type,
			OutDir:      opts.OutDir,
			PackageName: opts.PackageName,
			Name:        opts.Name,
			IncludeTags: opts.IncludeTags,
			ExcludeTags: opts.ExcludeTags,
			Optimistic:  opts.Optimistic,
		},
	})
}

// GenerateFromConfig generates every client in a YAML configuration file,
// or just the named one when onlyClient is non-empty.
func GenerateFromConfig(configPath, onlyClient string) error {
	return cli.RunGenerate(cli.RunGenerateParams{
		ConfigPath:   configPath,
		SingleClient: onlyClient,
	})
}

// Compile loads a document from a file or URL and compiles it into the
// language-agnostic API descriptor used by emitters and the runtime.
func Compile(spec string, opts compiler.Options) (*descriptor.API, error) {
	doc, err := openapi.LoadDocument(spec)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(doc, opts)
}

// Validate loads and validates an OpenAPI document.
func Validate(spec string) error {
	return openapi.ValidateDocument(spec)
}
