package rules

import (
	"maps"
	"slices"
)

// Rule describes one rule inside a Config: its activation state, metadata,
// and default parameter values.
type Rule struct {
	// Active indicates whether the rule runs during analysis.
	Active bool

	// Type categorizes the rule. Never changed by user overrides.
	Type IssueType

	// DefaultSeverity is the severity applied to the rule's findings.
	// In an effective config this already reflects any user override.
	DefaultSeverity Severity

	// Parameters holds the rule's parameter values, or nil when the rule
	// has none.
	Parameters map[string]string

	// Title is a short human-readable summary of the rule.
	Title string

	// Description is the rule's long description in Markdown.
	Description string
}

// Config is the rule configuration for one language: the full rule set with
// per-rule activation, metadata, and parameters.
//
// A Config is never mutated after construction. The effective-rules cache
// keys on Config pointer identity, so callers must hand the same *Config
// instance to every lookup that means "the same defaults".
type Config struct {
	// LanguageKey is the key of the language this config applies to.
	LanguageKey string

	// Rules maps partial rule keys (no repository prefix) to their
	// definition.
	Rules map[string]Rule
}

// AllRuleKeys returns every partial rule key, sorted.
func (c *Config) AllRuleKeys() []string {
	keys := slices.Collect(maps.Keys(c.Rules))
	slices.Sort(keys)
	return keys
}

// ActiveRuleKeys returns the partial keys of active rules, sorted.
func (c *Config) ActiveRuleKeys() []string {
	var keys []string
	for k, r := range c.Rules {
		if r.Active {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// IsActive reports whether the rule with the given partial key exists and
// is active.
func (c *Config) IsActive(partialKey string) bool {
	r, ok := c.Rules[partialKey]
	return ok && r.Active
}

// RuleByKey returns the rule definition for a partial key.
func (c *Config) RuleByKey(partialKey string) (Rule, bool) {
	r, ok := c.Rules[partialKey]
	return r, ok
}
