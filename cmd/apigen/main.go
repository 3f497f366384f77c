package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodeGra-de/apigen/internal/cli"
)

func main() {
	root := &cobra.Command{
		Use:   "apigen",
		Short: "Compile OpenAPI documents into API clients",
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var configPath string
	var singleClient string
	var verbose bool
	var input string
	var typ string
	var outDir string
	var packageName string
	var name string
	var includeTags []string
	var excludeTags []string
	var optimistic bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate API clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunGenerate(cli.RunGenerateParams{
				ConfigPath:   configPath,
				SingleClient: singleClient,
				Verbose:      verbose,
				Fallback: cli.FallbackParams{
					Spec:        input,
					Type:        typ,
					OutDir:      outDir,
					PackageName: packageName,
					Name:        name,
					IncludeTags: includeTags,
					ExcludeTags: excludeTags,
					Optimistic:  optimistic,
				},
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to apigen.yaml config")
	cmd.Flags().StringVar(&singleClient, "client", "", "Generate only the named client from config")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	// Fallback single-client flags
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI spec file or URL (yaml/json)")
	cmd.Flags().StringVar(&typ, "type", "", "Client type (e.g., typescript)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory")
	cmd.Flags().StringVar(&packageName, "package-name", "", "Package name")
	cmd.Flags().StringVar(&name, "client-name", "", "Client class name")
	cmd.Flags().StringArrayVar(&includeTags, "include-tags", nil, "Regex patterns for tags to include")
	cmd.Flags().StringArrayVar(&excludeTags, "exclude-tags", nil, "Regex patterns for tags to exclude")
	cmd.Flags().BoolVar(&optimistic, "optimistic", false, "Generate the convenience wrapper that throws on rejected statuses")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunValidate(input)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI spec file or URL (yaml/json)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
