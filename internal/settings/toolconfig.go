package settings

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/rulekit/pkg/rules"
)

// ToolConfig is rulekit's own configuration, loaded from rulekit.yml.
// It controls tool behavior, not rule activation; rule overrides live in
// the settings document.
type ToolConfig struct {
	// LogLevel is the logger verbosity ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`

	// Format selects the report output ("text", "json", "sarif").
	Format string `yaml:"format"`

	// Languages restricts analysis to the listed language keys. Empty
	// means all supported languages.
	Languages []string `yaml:"languages"`
}

// NewToolConfig returns a config with defaults applied.
func NewToolConfig() *ToolConfig {
	return &ToolConfig{
		LogLevel: "info",
		Format:   "text",
	}
}

// ToolConfigFromYAML parses a tool config document and applies defaults
// for absent fields.
func ToolConfigFromYAML(data []byte) (*ToolConfig, error) {
	cfg := NewToolConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse tool config: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values outside the known sets, naming the offender.
func (c *ToolConfig) Validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		return fmt.Errorf("tool config: unknown log level %q", c.LogLevel)
	}
	if !slices.Contains([]string{"text", "json", "sarif"}, c.Format) {
		return fmt.Errorf("tool config: unknown format %q", c.Format)
	}
	for _, key := range c.Languages {
		if _, ok := rules.LanguageForKey(key); !ok {
			return fmt.Errorf("tool config: unknown language %q", key)
		}
	}
	return nil
}
