// Package provider supplies default rule configurations per language.
// The bundled provider parses rule metadata shipped inside the binary; a
// composite fans a lookup out over several providers.
package provider

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/rulekit/internal/logging"
	"github.com/yaklabco/rulekit/pkg/rules"
)

//go:embed metadata/*.json
var metadataFS embed.FS

// Source supplies the default rule configuration for a language.
// A nil result means the language is not supported by this source.
type Source interface {
	RulesConfiguration(languageKey string) *rules.Config
}

// Bundled serves the rule metadata embedded in the binary.
//
// Each language's config is parsed once at construction and the same
// *rules.Config instance is returned on every lookup, so the effective
// rules cache sees a stable identity for "unchanged defaults".
type Bundled struct {
	configs map[string]*rules.Config
	logger  *log.Logger
}

// NewBundled parses the embedded metadata for every language.
// Metadata with unknown severity, type, or level strings fails here, at
// startup, with the offending value in the error.
func NewBundled(logger *log.Logger) (*Bundled, error) {
	if logger == nil {
		logger = logging.Default()
	}

	entries, err := fs.Glob(metadataFS, "metadata/*.json")
	if err != nil {
		return nil, fmt.Errorf("bundled rules: %w", err)
	}

	b := &Bundled{
		configs: make(map[string]*rules.Config, len(entries)),
		logger:  logger,
	}

	for _, name := range entries {
		data, err := metadataFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("bundled rules: read %s: %w", name, err)
		}
		cfg, err := parseMetadata(data)
		if err != nil {
			return nil, fmt.Errorf("bundled rules: parse %s: %w", name, err)
		}
		if _, ok := rules.LanguageForKey(cfg.LanguageKey); !ok {
			return nil, fmt.Errorf("bundled rules: %s declares unknown language %q", name, cfg.LanguageKey)
		}
		b.configs[cfg.LanguageKey] = cfg
		logger.Debug("loaded bundled rules",
			logging.FieldLanguage, cfg.LanguageKey,
			logging.FieldRulesTotal, len(cfg.Rules))
	}

	return b, nil
}

// RulesConfiguration returns the bundled config for languageKey, or nil
// for an unsupported language. Lookup is exact-string on the key.
func (b *Bundled) RulesConfiguration(languageKey string) *rules.Config {
	return b.configs[languageKey]
}

// Composite looks a language up across several sources in order.
type Composite struct {
	sources []Source
}

// NewComposite creates a composite over the given sources.
func NewComposite(sources ...Source) *Composite {
	return &Composite{sources: sources}
}

// RulesConfiguration returns the first source's config for languageKey.
// Asking for a language no source supports is a programming error and
// returns an explicit failure rather than a silent nil.
func (c *Composite) RulesConfiguration(languageKey string) (*rules.Config, error) {
	for _, source := range c.sources {
		if cfg := source.RulesConfiguration(languageKey); cfg != nil {
			return cfg, nil
		}
	}
	return nil, fmt.Errorf("no rules configuration source for language %q", languageKey)
}

// metadataFile is the on-disk shape of a bundled metadata document.
type metadataFile struct {
	Language string                  `json:"language"`
	Rules    map[string]metadataRule `json:"rules"`
}

type metadataRule struct {
	Type        string            `json:"type"`
	Severity    string            `json:"severity"`
	Active      bool              `json:"active"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters"`
}

func parseMetadata(data []byte) (*rules.Config, error) {
	var file metadataFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if file.Language == "" {
		return nil, fmt.Errorf("missing language key")
	}

	cfg := &rules.Config{
		LanguageKey: file.Language,
		Rules:       make(map[string]rules.Rule, len(file.Rules)),
	}

	for partialKey, raw := range file.Rules {
		issueType, err := rules.ParseIssueType(raw.Type)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", partialKey, err)
		}
		severity, err := rules.ParseSeverity(raw.Severity)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", partialKey, err)
		}

		cfg.Rules[partialKey] = rules.Rule{
			Active:          raw.Active,
			Type:            issueType,
			DefaultSeverity: severity,
			Parameters:      raw.Parameters,
			Title:           raw.Title,
			Description:     raw.Description,
		}
	}

	return cfg, nil
}
