package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the complete configuration for one generation run.
type Config struct {
	Spec    string   `yaml:"spec" validate:"required"`
	Name    string   `yaml:"name"`
	Clients []Client `yaml:"clients" validate:"min=1,dive"`
}

// Client configures one generated client.
type Client struct {
	Type        string   `yaml:"type" validate:"required"`
	OutDir      string   `yaml:"outDir" validate:"required"`
	PackageName string   `yaml:"packageName" validate:"required"`
	Name        string   `yaml:"name" validate:"required"`
	IncludeTags []string `yaml:"includeTags"`
	ExcludeTags []string `yaml:"excludeTags"`
	// Optimistic generates the convenience wrapper that returns decoded data
	// directly and surfaces rejected statuses as errors.
	Optimistic bool `yaml:"optimistic"`
	// DefaultBaseURL is baked into the generated client and used when the
	// caller does not supply a base URL.
	DefaultBaseURL string `yaml:"defaultBaseURL"`
}

var validate = validator.New()

// Load reads and validates a YAML configuration file. Relative paths are
// resolved against the working directory; an HTTP(S) spec URL is kept as-is.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	for i := range cfg.Clients {
		c := &cfg.Clients[i]
		if !filepath.IsAbs(c.OutDir) {
			abs, _ := filepath.Abs(c.OutDir)
			c.OutDir = abs
		}
	}
	if u, err := url.Parse(cfg.Spec); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		// keep URLs as-is
	} else if !filepath.IsAbs(cfg.Spec) {
		abs, _ := filepath.Abs(cfg.Spec)
		cfg.Spec = abs
	}
	return &cfg, nil
}
