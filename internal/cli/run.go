// Package cli wires the command entry points to the configuration,
// compiler and emitter packages.
package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/CodeGra-de/apigen/pkg/config"
	"github.com/CodeGra-de/apigen/pkg/emitter"
	"github.com/CodeGra-de/apigen/pkg/emitter/typescript"
	"github.com/CodeGra-de/apigen/pkg/openapi"
)

// FallbackParams configure a single client when no config file is given.
type FallbackParams struct {
	Spec        string
	Type        string
	OutDir      string
	PackageName string
	Name        string
	IncludeTags []string
	ExcludeTags []string
	Optimistic  bool
}

type RunGenerateParams struct {
	ConfigPath   string
	SingleClient string
	Verbose      bool
	Fallback     FallbackParams
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newService(verbose bool) *emitter.Service {
	registry := emitter.NewRegistry()
	registry.Register(typescript.NewGenerator())
	return emitter.NewService(registry, newLogger(verbose))
}

// RunValidate loads and validates an OpenAPI document from a file or URL.
func RunValidate(input string) error {
	return openapi.ValidateDocument(input)
}

// RunGenerate drives a generation run from either a config file or the
// fallback single-client flags.
func RunGenerate(p RunGenerateParams) error {
	svc := newService(p.Verbose)

	if p.ConfigPath != "" {
		cfg, err := config.Load(p.ConfigPath)
		if err != nil {
			return err
		}
		return svc.Run(cfg, p.SingleClient)
	}

	f := p.Fallback
	if f.Spec == "" || f.Type == "" || f.OutDir == "" || f.PackageName == "" || f.Name == "" {
		return errors.New("either --config or all of --input, --type, --out, --package-name, --client-name must be provided")
	}
	cfg := &config.Config{
		Spec: f.Spec,
		Clients: []config.Client{
			{
				Type:        f.Type,
				OutDir:      f.OutDir,
				PackageName: f.PackageName,
				Name:        f.Name,
				IncludeTags: f.IncludeTags,
				ExcludeTags: f.ExcludeTags,
				Optimistic:  f.Optimistic,
			},
		},
	}
	return svc.Run(cfg, "")
}
