// Package resolve computes effective rule configurations by merging a
// language's default rule set with user-supplied overrides, and caches the
// result per language.
package resolve

import (
	"fmt"
	"maps"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/rulekit/internal/logging"
	"github.com/yaklabco/rulekit/pkg/rules"
)

// Calculator merges default rule configurations with user settings.
type Calculator struct {
	logger *log.Logger
}

// NewCalculator creates a calculator that logs merge decisions to logger.
func NewCalculator(logger *log.Logger) *Calculator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Calculator{logger: logger}
}

// EffectiveConfig merges defaultConfig with the overrides in settings and
// returns a newly allocated config. Neither input is mutated.
//
// Override lookup uses the case-sensitive composite key
// "languageKey:partialKey"; entries whose language prefix does not match
// languageKey exactly, or whose partial key is not in the default rule set,
// are ignored. An override's Level switches activation, its Severity
// replaces the default severity, and its parameter values replace default
// parameters with case-insensitive parameter-key matching. The rule's Type
// is never overridden.
func (c *Calculator) EffectiveConfig(languageKey string, defaultConfig *rules.Config, settings *rules.RulesSettings) (*rules.Config, error) {
	if languageKey == "" {
		return nil, fmt.Errorf("effective config: languageKey is empty")
	}
	if defaultConfig == nil {
		return nil, fmt.Errorf("effective config: defaultConfig is nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("effective config: settings is nil")
	}

	overrides := overridesForLanguage(languageKey, settings)
	if len(overrides) == 0 {
		c.logger.Debug("no custom rule settings for language", logging.FieldLanguage, languageKey)
	} else {
		c.logger.Debug("merging custom rule settings",
			logging.FieldLanguage, languageKey,
			logging.FieldRules, len(overrides))
	}

	effective := &rules.Config{
		LanguageKey: defaultConfig.LanguageKey,
		Rules:       make(map[string]rules.Rule, len(defaultConfig.Rules)),
	}

	for partialKey, rule := range defaultConfig.Rules {
		merged := rule
		if rule.Parameters != nil {
			merged.Parameters = maps.Clone(rule.Parameters)
		}

		if override, ok := overrides[partialKey]; ok {
			switch override.Level {
			case rules.LevelOn:
				merged.Active = true
			case rules.LevelOff:
				merged.Active = false
			}
			if override.Severity != "" {
				merged.DefaultSeverity = override.Severity
			}
			merged.Parameters = mergeParameters(merged.Parameters, override.Parameters)
		}

		effective.Rules[partialKey] = merged
	}

	return effective, nil
}

// overridesForLanguage extracts the settings entries addressed to
// languageKey, keyed by partial rule key. The language prefix and the
// partial key are both matched case-sensitively.
func overridesForLanguage(languageKey string, settings *rules.RulesSettings) map[string]rules.RuleConfig {
	out := make(map[string]rules.RuleConfig)
	for composite, rc := range settings.Rules {
		repo, partial, ok := rules.SplitKey(composite)
		if !ok || repo != languageKey {
			continue
		}
		out[partial] = rc
	}
	return out
}

// mergeParameters overlays override parameter values onto defaults.
// A default key is replaced by an override whose key matches
// case-insensitively; override-only keys are appended verbatim. Both maps
// nil yields nil; one nil yields a copy of the other.
func mergeParameters(defaults, overrides map[string]string) map[string]string {
	if defaults == nil && overrides == nil {
		return nil
	}
	if defaults == nil {
		return maps.Clone(overrides)
	}
	if overrides == nil {
		return defaults
	}

	merged := make(map[string]string, len(defaults)+len(overrides))
	consumed := make(map[string]bool, len(overrides))

	for key, value := range defaults {
		merged[key] = value
		for oKey, oValue := range overrides {
			if strings.EqualFold(oKey, key) {
				merged[key] = oValue
				consumed[oKey] = true
				break
			}
		}
	}

	for oKey, oValue := range overrides {
		if !consumed[oKey] {
			merged[oKey] = oValue
		}
	}

	return merged
}
