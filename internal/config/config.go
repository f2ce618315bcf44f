// Package config loads analyzer settings from an optional YAML file and
// supplies complete defaults when no file is given.
package config

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/suduli/vcast-analyzer/internal/classify"
)

// DefaultOutput is the workbook filename used when none is configured.
const DefaultOutput = "vectorcast_analysis.xlsx"

// Category configures one report category. Exactly one of Regex or Glob
// must be set; order in the file is match precedence.
type Category struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	Regex string `yaml:"regex"`
	Glob  string `yaml:"glob"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Config represents the top-level configuration.
type Config struct {
	Categories []Category    `yaml:"categories"`
	Output     string        `yaml:"output"`
	TreeFile   string        `yaml:"tree_file"`
	Logging    LoggingConfig `yaml:"logging"`
}

// Default returns a complete configuration using the built-in category
// set and output name.
func Default() *Config {
	return &Config{
		Output:  DefaultOutput,
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads and parses a configuration file using the real filesystem.
func Load(path string) (*Config, error) {
	return LoadWithFs(path, afero.NewOsFs())
}

// LoadWithFs reads and parses a configuration file using the provided
// filesystem. Values missing from the file keep their defaults.
func LoadWithFs(path string, afs afero.Fs) (*Config, error) {
	data, err := afero.ReadFile(afs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// CategorySpecs returns the configured categories as classifier specs, or
// the built-in set when the config declares none. Pattern validity is
// checked by classify.Compile so a bad pattern fails before any scanning.
func (c *Config) CategorySpecs() []classify.Spec {
	if len(c.Categories) == 0 {
		return classify.DefaultSpecs()
	}

	specs := make([]classify.Spec, len(c.Categories))
	for i, cat := range c.Categories {
		specs[i] = classify.Spec{
			Name:  cat.Name,
			Title: cat.Title,
			Regex: cat.Regex,
			Glob:  cat.Glob,
		}
	}
	return specs
}
