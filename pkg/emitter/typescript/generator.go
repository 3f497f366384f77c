// Package typescript emits a self-contained TypeScript client from a
// compiled API descriptor.
package typescript

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/CodeGra-de/apigen/pkg/config"
	"github.com/CodeGra-de/apigen/pkg/descriptor"
	"github.com/CodeGra-de/apigen/pkg/utils"
)

//go:embed templates/*
var templatesFS embed.FS

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Type() string {
	return "typescript"
}

// Emit writes the TypeScript client: one service module per tag, a models
// module for the named types, and the request core.
func (g *Generator) Emit(client config.Client, api *descriptor.API) error {
	srcDir := filepath.Join(client.OutDir, "src")
	servicesDir := filepath.Join(srcDir, "services")
	if err := os.MkdirAll(servicesDir, 0o755); err != nil {
		return err
	}

	funcMap := template.FuncMap{
		"pascal":        utils.ToPascalCase,
		"camel":         utils.ToCamelCase,
		"serviceName":   serviceName,
		"serviceProp":   serviceProp,
		"fileBase":      fileBase,
		"tsType":        tsType,
		"pathTemplate":  pathTemplate,
		"methodArgs":    methodArgs,
		"queryParams":   queryParams,
		"headerParams":  headerParams,
		"modelRefs":     modelRefs,
		"quotePropName": quoteProp,
	}
	for k, v := range sprig.FuncMap() {
		funcMap[k] = v
	}

	root := map[string]any{"Client": client, "API": api}
	if err := renderFile("client.ts.gotmpl", filepath.Join(srcDir, "client.ts"), funcMap, root); err != nil {
		return err
	}
	if err := renderFile("index.ts.gotmpl", filepath.Join(srcDir, "index.ts"), funcMap, root); err != nil {
		return err
	}
	if err := renderFile("models.ts.gotmpl", filepath.Join(srcDir, "models.ts"), funcMap, root); err != nil {
		return err
	}
	for _, svc := range api.Services {
		target := filepath.Join(servicesDir, fileBase(svc.Tag)+".ts")
		data := map[string]any{"Client": client, "API": api, "Service": svc}
		if err := renderFile("service.ts.gotmpl", target, funcMap, data); err != nil {
			return err
		}
	}
	if err := renderFile("package.json.gotmpl", filepath.Join(client.OutDir, "package.json"), funcMap, root); err != nil {
		return err
	}
	return renderFile("tsconfig.json.gotmpl", filepath.Join(client.OutDir, "tsconfig.json"), funcMap, root)
}

func renderFile(templateName, targetPath string, funcMap template.FuncMap, data map[string]any) error {
	content, err := templatesFS.ReadFile("templates/" + templateName)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", templateName, err)
	}
	tmpl, err := template.New(templateName).Funcs(funcMap).Parse(string(content))
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", templateName, err)
	}
	file, err := os.Create(targetPath)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("rendering %s: %w", templateName, err)
	}
	return nil
}
