package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hengadev/errsx"

	"github.com/hengadev/jsonmap/internal/codegen"
)

// Receiver styles of the generated JSONProperties method.
const (
	ReceiverValue   = "value"
	ReceiverPointer = "pointer"
)

// Config represents the configuration for the code generator
type Config struct {
	Version    string                   `yaml:"version"`
	Generation GenerationConfig         `yaml:"generation"`
	Packages   map[string]PackageConfig `yaml:"packages"`
}

// GenerationConfig holds general generation settings
type GenerationConfig struct {
	OutputSuffix  string `yaml:"output_suffix"`
	ReceiverStyle string `yaml:"receiver_style"`
	ImportPath    string `yaml:"import_path"`
	// TagKey overrides the struct tag key. Empty falls back to
	// JSONMAP_TAG_KEY, then to "jsonmap".
	TagKey string `yaml:"tag_key,omitempty"`
}

// PackageConfig holds per-package overrides
type PackageConfig struct {
	OutputDir     string `yaml:"output_dir,omitempty"`
	ReceiverStyle string `yaml:"receiver_style,omitempty"`
	Skip          bool   `yaml:"skip"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with empty config, not defaults
	config := &Config{
		Packages: make(map[string]PackageConfig),
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Generation: GenerationConfig{
			OutputSuffix:  "_jsonmap",
			ReceiverStyle: ReceiverValue,
			ImportPath:    codegen.DefaultImportPath,
		},
		Packages: make(map[string]PackageConfig),
	}
}

// Validate checks if the configuration is valid. Every problem is reported,
// keyed by its YAML path.
func (c *Config) Validate() error {
	// Version is optional - default to "1" if not set
	if c.Version == "" {
		c.Version = "1"
	}

	errs := errsx.Map{}

	switch {
	case c.Generation.OutputSuffix == "":
		errs.Set("generation.output_suffix", fmt.Errorf("output_suffix cannot be empty"))
	case !isValidOutputSuffix(c.Generation.OutputSuffix):
		errs.Set("generation.output_suffix", fmt.Errorf("output_suffix must start with underscore or letter"))
	}

	if !isValidReceiverStyle(c.Generation.ReceiverStyle) {
		errs.Set("generation.receiver_style", fmt.Errorf("receiver_style must be one of: %s, %s", ReceiverValue, ReceiverPointer))
	}

	if c.Generation.TagKey != "" && !isValidGoIdentifier(c.Generation.TagKey) {
		errs.Set("generation.tag_key", fmt.Errorf("tag_key must be a valid Go identifier"))
	}

	for pkg, pkgConfig := range c.Packages {
		if pkgConfig.ReceiverStyle != "" && !isValidReceiverStyle(pkgConfig.ReceiverStyle) {
			errs.Set(fmt.Sprintf("packages.%s.receiver_style", pkg), fmt.Errorf("invalid receiver_style for package %s", pkg))
		}
	}

	return errs.AsError()
}

// ReceiverStyleFor returns the receiver style used for a package.
func (c *Config) ReceiverStyleFor(pkg string) string {
	if pkgConfig, ok := c.Packages[pkg]; ok && pkgConfig.ReceiverStyle != "" {
		return pkgConfig.ReceiverStyle
	}
	if c.Generation.ReceiverStyle == "" {
		return ReceiverValue
	}
	return c.Generation.ReceiverStyle
}

// ToCodegenConfig converts the YAML config to the codegen GenerationConfig
// of one package.
func (c *Config) ToCodegenConfig(pkg, version string) codegen.GenerationConfig {
	return codegen.GenerationConfig{
		ImportPath:       c.Generation.ImportPath,
		PointerReceiver:  c.ReceiverStyleFor(pkg) == ReceiverPointer,
		GeneratorVersion: version,
	}
}

func isValidReceiverStyle(s string) bool {
	return s == "" || s == ReceiverValue || s == ReceiverPointer
}

// isValidGoIdentifier checks if a string is a valid Go identifier
func isValidGoIdentifier(s string) bool {
	if s == "" {
		return false
	}

	// Must start with letter or underscore
	first := rune(s[0])
	if !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') || first == '_') {
		return false
	}

	// Rest can be letters, digits, or underscores
	for _, r := range s[1:] {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
			return false
		}
	}

	return true
}

// isValidOutputSuffix checks if output suffix is valid
func isValidOutputSuffix(s string) bool {
	if s == "" {
		return false
	}

	first := rune(s[0])
	return (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') || first == '_'
}
